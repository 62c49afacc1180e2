package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/suitwatch/internal/common"
	"github.com/Veraticus/suitwatch/internal/model"
)

// FileName returns the export file name for a run started at t.
func FileName(t time.Time) string {
	return "results_" + t.Format("2006-01-02_15-04-05") + ".csv"
}

// CSVWriter writes exports as CSV files into a directory.
type CSVWriter struct {
	now    func() time.Time
	logger *slog.Logger
	dir    string
}

// NewCSVWriter creates a writer that places exports in dir.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the clock used for file names.
func (w *CSVWriter) WithClock(now func() time.Time) *CSVWriter {
	w.now = now
	return w
}

// Write renders records and returns the path of the created file.
func (w *CSVWriter) Write(ctx context.Context, records []model.ResultRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return "", fmt.Errorf("%w: failed to create export directory: %w", common.ErrExportFailed, err)
	}

	path := filepath.Join(w.dir, FileName(w.now()))
	f, err := os.Create(path) //nolint:gosec // path is built from the configured export dir
	if err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %w", common.ErrExportFailed, path, err)
	}

	table := BuildTable(records)
	if err := writeTable(csv.NewWriter(f), table); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to close %s: %w", common.ErrExportFailed, path, err)
	}

	w.logger.Info("Export created", "path", path, "rows", len(records))
	return path, nil
}

func writeTable(cw *csv.Writer, table Table) error {
	if err := cw.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
