package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/suitwatch/internal/bot"
	"github.com/Veraticus/suitwatch/internal/config"
	"github.com/Veraticus/suitwatch/internal/engine"
	"github.com/Veraticus/suitwatch/internal/report"
	"github.com/Veraticus/suitwatch/internal/service"
	"github.com/Veraticus/suitwatch/internal/sheets"
	"github.com/Veraticus/suitwatch/internal/storage"
	"github.com/spf13/viper"
)

// Export formats.
const (
	formatCSV    = "csv"
	formatSheets = "sheets"
)

// initStorage opens the configured backend and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	driver := viper.GetString("database.driver")

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath(driver)
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.Open(driver, dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initReportWriter builds the writer for an export format.
func initReportWriter(ctx context.Context, format string) (service.ReportWriter, error) {
	switch strings.ToLower(format) {
	case formatCSV, "":
		dir := viper.GetString("export.dir")
		if dir == "" {
			dir = config.DefaultExportDir()
		}
		return report.NewCSVWriter(config.ExpandPath(dir), slog.Default()), nil
	case formatSheets:
		sheetsConfig, err := config.LoadSheetsConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load sheets config: %w", err)
		}
		writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
		if err != nil {
			return nil, err
		}
		return writer, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (use csv or sheets)", format)
	}
}

// newRuntime wires the message pipeline around store.
func newRuntime(store service.Storage, writer service.ReportWriter, notifier service.Notifier) (*bot.Runtime, error) {
	return bot.New(bot.Config{
		Engine:          engine.New(store),
		Store:           store,
		Writer:          writer,
		Notifier:        notifier,
		Logger:          slog.Default(),
		ForwardMessages: viper.GetBool("bot.forward_messages"),
	})
}
