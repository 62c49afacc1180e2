package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// LogNotifier delivers notifications as structured log entries.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs text at info level.
func (n *LogNotifier) Notify(ctx context.Context, text string) error {
	n.logger.InfoContext(ctx, "Notification", "text", text)
	return nil
}

// WriterNotifier prints notifications to a stream, one block per message.
type WriterNotifier struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWriterNotifier creates a notifier printing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify writes text followed by a blank line.
func (n *WriterNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintf(n.w, "%s\n\n", text); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}
