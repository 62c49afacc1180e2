package config

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/suitwatch/internal/sheets"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/dealer")
	t.Setenv("SUITWATCH_TEST_DIR", "/srv/rounds")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde only", in: "~", want: "/home/dealer"},
		{name: "tilde prefix", in: "~/data/results.db", want: "/home/dealer/data/results.db"},
		{name: "env var", in: "$SUITWATCH_TEST_DIR/db", want: "/srv/rounds/db"},
		{name: "absolute", in: "/var/lib/suitwatch", want: "/var/lib/suitwatch"},
		{name: "tilde in middle untouched", in: "/tmp/~x", want: "/tmp/~x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")

	assert.Equal(t, filepath.Join("/xdg", "suitwatch"), DataDir())
	assert.Equal(t, filepath.Join("/xdg", "suitwatch", "suitwatch.db"), DefaultDatabasePath("sqlite"))
	assert.Equal(t, filepath.Join("/xdg", "suitwatch", "results.yaml"), DefaultDatabasePath("yaml"))
	assert.Equal(t, filepath.Join("/xdg", "suitwatch", "exports"), DefaultExportDir())
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

	t.Run("service account from viper", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		t.Setenv("HOME", "/home/dealer")
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")

		viper.Set("sheets.service_account_path", "~/key.json")
		viper.Set("sheets.spreadsheet_id", "sheet-123")
		viper.Set("sheets.formatting", false)

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/home/dealer/key.json", cfg.ServiceAccountPath)
		assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
		assert.False(t, cfg.EnableFormatting)
		assert.Equal(t, sheets.DefaultSpreadsheetName, cfg.SpreadsheetName)
	})

	t.Run("env fallback", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/etc/key.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Baccarat")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/etc/key.json", cfg.ServiceAccountPath)
		assert.Equal(t, "Baccarat", cfg.SpreadsheetName)
		assert.True(t, cfg.EnableFormatting)
	})

	t.Run("no credentials", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")

		_, err := LoadSheetsConfig()
		assert.Error(t, err)
	})
}
