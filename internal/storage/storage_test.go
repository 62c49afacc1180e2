package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/suitwatch/internal/common"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/Veraticus/suitwatch/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	return store, func() { _ = store.Close() }
}

func createTestYAMLStorage(t *testing.T) (*YAMLStorage, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.yaml")

	store, err := NewYAMLStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	return store, func() { _ = store.Close() }
}

func record(round int, winner model.Winner) model.ResultRecord {
	return model.ResultRecord{
		Date:            "2026-03-14",
		Time:            "09:26:53",
		RoundNumber:     round,
		FirstGroupCards: "♠️♥️♦️",
		Winner:          winner,
		Excerpt:         "✅ #N" + string(rune('0'+round%10)) + " (♠️♥️♦️) - (♣️♣️)",
	}
}

// backends runs the same contract against every storage implementation.
func backends(t *testing.T) map[string]func(*testing.T) (service.Storage, func()) {
	t.Helper()
	return map[string]func(*testing.T) (service.Storage, func()){
		"sqlite": func(t *testing.T) (service.Storage, func()) {
			t.Helper()
			return createTestStorage(t)
		},
		"yaml": func(t *testing.T) (service.Storage, func()) {
			t.Helper()
			return createTestYAMLStorage(t)
		},
	}
}

func TestStorage_AppendAndListAll(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := open(t)
			defer cleanup()
			ctx := context.Background()

			records, err := store.ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, records)

			require.NoError(t, store.Append(ctx, record(7, model.WinnerBanker)))
			require.NoError(t, store.Append(ctx, record(3, model.WinnerPlayer)))
			require.NoError(t, store.Append(ctx, record(12, model.WinnerBanker)))

			records, err = store.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, []int{7, 3, 12}, []int{records[0].RoundNumber, records[1].RoundNumber, records[2].RoundNumber})
			assert.Equal(t, record(3, model.WinnerPlayer), records[1])
		})
	}
}

func TestStorage_DuplicateRound(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := open(t)
			defer cleanup()
			ctx := context.Background()

			require.NoError(t, store.Append(ctx, record(5, model.WinnerPlayer)))
			err := store.Append(ctx, record(5, model.WinnerBanker))
			require.ErrorIs(t, err, common.ErrDuplicateEntry)

			records, err := store.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, model.WinnerPlayer, records[0].Winner)
		})
	}
}

func TestStorage_Clear(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := open(t)
			defer cleanup()
			ctx := context.Background()

			require.NoError(t, store.SetSetting(ctx, service.SettingMonitoredChannel, "-1001234567890"))
			require.NoError(t, store.Append(ctx, record(1, model.WinnerPlayer)))
			require.NoError(t, store.Append(ctx, record(2, model.WinnerBanker)))
			require.NoError(t, store.Clear(ctx))

			records, err := store.ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, records)

			// A cleared round number can be recorded again.
			require.NoError(t, store.Append(ctx, record(1, model.WinnerBanker)))

			value, ok, err := store.GetSetting(ctx, service.SettingMonitoredChannel)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "-1001234567890", value)
		})
	}
}

func TestStorage_Settings(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := open(t)
			defer cleanup()
			ctx := context.Background()

			_, ok, err := store.GetSetting(ctx, service.SettingAutoExportInterval)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.SetSetting(ctx, service.SettingAutoExportInterval, "60"))
			require.NoError(t, store.SetSetting(ctx, service.SettingAutoExportInterval, "15"))

			value, ok, err := store.GetSetting(ctx, service.SettingAutoExportInterval)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "15", value)

			assert.ErrorIs(t, store.SetSetting(ctx, " ", "x"), ErrEmptyString)
		})
	}
}

func TestStorage_RejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		mutate func(*model.ResultRecord)
		name   string
	}{
		{name: "no winner", mutate: func(r *model.ResultRecord) { r.Winner = model.WinnerNone }},
		{name: "unknown winner", mutate: func(r *model.ResultRecord) { r.Winner = "Tie" }},
		{name: "negative round", mutate: func(r *model.ResultRecord) { r.RoundNumber = -1 }},
		{name: "missing date", mutate: func(r *model.ResultRecord) { r.Date = "" }},
		{name: "missing time", mutate: func(r *model.ResultRecord) { r.Time = "" }},
		{name: "long excerpt", mutate: func(r *model.ResultRecord) {
			r.Excerpt = string(make([]rune, model.ExcerptLimit+1))
		}},
	}

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := open(t)
			defer cleanup()

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					r := record(9, model.WinnerPlayer)
					tt.mutate(&r)
					assert.ErrorIs(t, store.Append(context.Background(), r), ErrInvalidRecord)
				})
			}
		})
	}
}

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, record(4, model.WinnerBanker)))
	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "results.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Append(ctx, record(11, model.WinnerPlayer)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	records, err := reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 11, records[0].RoundNumber)
}

func TestYAMLStorage_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	require.NoError(t, os.WriteFile(path, []byte("results: [unterminated"), 0600))

	store, err := NewYAMLStorage(path)
	require.NoError(t, err)

	err = store.Migrate(context.Background())
	assert.ErrorIs(t, err, common.ErrDatabaseCorrupted)
}

func TestYAMLStorage_FileLayout(t *testing.T) {
	store, cleanup := createTestYAMLStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, record(2, model.WinnerBanker)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "round_number: 2")
	assert.Contains(t, string(data), "winner: Banker")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		wantType any
		name     string
		driver   string
		wantErr  bool
	}{
		{name: "sqlite", driver: DriverSQLite, wantType: &SQLiteStorage{}},
		{name: "default is sqlite", driver: "", wantType: &SQLiteStorage{}},
		{name: "yaml", driver: DriverYAML, wantType: &YAMLStorage{}},
		{name: "unknown", driver: "postgres", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.driver, filepath.Join(dir, tt.name, "data"))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownBackend)
				return
			}
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			assert.IsType(t, tt.wantType, store)
		})
	}
}
