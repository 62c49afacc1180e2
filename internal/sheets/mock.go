package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/suitwatch/internal/model"
)

// MockWriter is a mock implementation of service.ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, records []model.ResultRecord) (string, error)
	WriteCalls     []WriteCall
	LastRecords    []model.ResultRecord
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error   error
	Locator string
	Records []model.ResultRecord
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write records the call and returns "mock-spreadsheet" unless WriteFunc overrides it.
func (m *MockWriter) Write(ctx context.Context, records []model.ResultRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastRecords = records

	locator := "mock-spreadsheet"
	var err error
	if m.WriteFunc != nil {
		locator, err = m.WriteFunc(ctx, records)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Records: records,
		Locator: locator,
		Error:   err,
	})

	return locator, err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastRecords = nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to fail every Write call with err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []model.ResultRecord) (string, error) {
		return "", err
	}
}
