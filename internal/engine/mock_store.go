package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/suitwatch/internal/common"
	"github.com/Veraticus/suitwatch/internal/model"
)

// MockStore is an in-memory ResultStore for testing with injectable failures.
type MockStore struct {
	ListErr     error
	AppendErr   error
	ClearErr    error
	records     []model.ResultRecord
	ListCalls   int
	AppendCalls int
	mu          sync.Mutex
}

// NewMockStore creates a mock store seeded with records.
func NewMockStore(records ...model.ResultRecord) *MockStore {
	return &MockStore{records: append([]model.ResultRecord(nil), records...)}
}

// ListAll implements service.ResultStore.
func (m *MockStore) ListAll(_ context.Context) ([]model.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]model.ResultRecord(nil), m.records...), nil
}

// Append implements service.ResultStore.
func (m *MockStore) Append(_ context.Context, record model.ResultRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	for _, r := range m.records {
		if r.RoundNumber == record.RoundNumber {
			return fmt.Errorf("%w: round %d", common.ErrDuplicateEntry, record.RoundNumber)
		}
	}
	m.records = append(m.records, record)
	return nil
}

// Clear implements service.ResultStore.
func (m *MockStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.records = nil
	return nil
}

// Records returns a copy of the stored records.
func (m *MockStore) Records() []model.ResultRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ResultRecord(nil), m.records...)
}
