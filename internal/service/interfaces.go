// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/suitwatch/internal/model"
)

// ResultStore defines the contract for the accepted-round persistence layer.
// Reads must observe prior writes from the same process.
type ResultStore interface {
	// ListAll returns every stored record in insertion order.
	ListAll(ctx context.Context) ([]model.ResultRecord, error)
	// Append stores a record. A record whose round number is already stored
	// fails with common.ErrDuplicateEntry.
	Append(ctx context.Context, record model.ResultRecord) error
	// Clear removes every record.
	Clear(ctx context.Context) error
}

// SettingsStore persists operator-controlled runtime settings.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Storage is the full persistence layer used by the commands.
type Storage interface {
	ResultStore
	SettingsStore
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter exports the stored records as a tabular report.
type ReportWriter interface {
	// Write exports the records and returns a locator for the report
	// (file path or spreadsheet id).
	Write(ctx context.Context, records []model.ResultRecord) (string, error)
}

// Notifier delivers operator notifications.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Setting keys.
const (
	SettingMonitoredChannel   = "stat_channel"
	SettingAutoExportInterval = "auto_export_interval"
)

// RetryOptions configures retry behavior for remote operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
