// Package testutil provides shared fixtures for suitwatch tests: isolated
// stores and a builder for round result messages.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/Veraticus/suitwatch/internal/service"
	"github.com/Veraticus/suitwatch/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory SQLite store seeded with records.
// It is closed automatically when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.Record(1, model.WinnerPlayer),
//		testutil.Record(2, model.WinnerBanker),
//	)
func SetupTestDB(t *testing.T, records ...model.ResultRecord) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for _, r := range records {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("failed to seed round %d: %v", r.RoundNumber, err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustListAll returns every stored record or fails the test.
func (db *TestDB) MustListAll() []model.ResultRecord {
	db.t.Helper()
	records, err := db.Storage.ListAll(context.Background())
	if err != nil {
		db.t.Fatalf("failed to list results: %v", err)
	}
	return records
}

// MustSetSetting stores a setting or fails the test.
func (db *TestDB) MustSetSetting(key, value string) {
	db.t.Helper()
	if err := db.Storage.SetSetting(context.Background(), key, value); err != nil {
		db.t.Fatalf("failed to set %s: %v", key, err)
	}
}

// Record returns a valid stored round for seeding.
func Record(round int, winner model.Winner) model.ResultRecord {
	return model.ResultRecord{
		Date:            "2026-10-14",
		Time:            "08:30:00",
		RoundNumber:     round,
		FirstGroupCards: "♠️♥️♣️",
		Winner:          winner,
		Excerpt:         NewRound(round).WinnerSide(winner).String(),
	}
}
