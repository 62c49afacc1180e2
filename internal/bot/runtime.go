// Package bot runs the message pipeline of the monitored channel.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Veraticus/suitwatch/internal/engine"
	"github.com/Veraticus/suitwatch/internal/feed"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/Veraticus/suitwatch/internal/scheduler"
	"github.com/Veraticus/suitwatch/internal/service"
)

// Config wires the runtime collaborators.
type Config struct {
	Engine          *engine.ClassificationEngine
	Store           service.Storage
	Writer          service.ReportWriter
	Notifier        service.Notifier
	Logger          *slog.Logger
	ForwardMessages bool
}

// Runtime serializes message handling and scheduled jobs. Every operation
// that touches the store holds mu, so a reset never interleaves with a
// classification.
type Runtime struct {
	engine   *engine.ClassificationEngine
	store    service.Storage
	writer   service.ReportWriter
	notifier service.Notifier
	logger   *slog.Logger
	forward  atomic.Bool
	mu       sync.Mutex
}

// HandleResult describes what happened to one inbound message.
type HandleResult struct {
	Decision model.Decision
	// Ignored is set when the message did not come from the monitored channel.
	Ignored bool
}

// New creates a runtime.
func New(config Config) (*Runtime, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("runtime requires a store")
	}
	if config.Engine == nil {
		config.Engine = engine.New(config.Store)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Notifier == nil {
		config.Notifier = NewLogNotifier(config.Logger)
	}

	r := &Runtime{
		engine:   config.Engine,
		store:    config.Store,
		writer:   config.Writer,
		notifier: config.Notifier,
		logger:   config.Logger,
	}
	r.forward.Store(config.ForwardMessages)
	return r, nil
}

// SetForwarding toggles copying every channel message to the notifier.
func (r *Runtime) SetForwarding(enabled bool) {
	r.forward.Store(enabled)
	r.logger.Info("Message forwarding changed", "enabled", enabled)
}

// Channel returns the monitored channel id.
func (r *Runtime) Channel(ctx context.Context) (int64, bool, error) {
	value, ok, err := r.store.GetSetting(ctx, service.SettingMonitoredChannel)
	if err != nil || !ok {
		return 0, false, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("stored channel id %q is invalid: %w", value, err)
	}
	return id, true, nil
}

// SetChannel normalizes and persists the monitored channel id.
func (r *Runtime) SetChannel(ctx context.Context, id int64) (int64, error) {
	id = feed.NormalizeChannelID(id)
	if err := r.store.SetSetting(ctx, service.SettingMonitoredChannel, strconv.FormatInt(id, 10)); err != nil {
		return 0, err
	}
	r.logger.Info("Monitored channel configured", "channel_id", id)
	return id, nil
}

// ExportInterval returns the configured auto-export interval.
func (r *Runtime) ExportInterval(ctx context.Context) time.Duration {
	value, ok, err := r.store.GetSetting(ctx, service.SettingAutoExportInterval)
	if err != nil {
		r.logger.Warn("Failed to read export interval, using default", "error", err)
		return scheduler.DefaultExportInterval
	}
	if !ok {
		return scheduler.DefaultExportInterval
	}
	return scheduler.FromMinutes(value)
}

// SetExportInterval validates and persists the auto-export interval.
func (r *Runtime) SetExportInterval(ctx context.Context, d time.Duration) error {
	if err := scheduler.ValidateInterval(d); err != nil {
		return err
	}
	if err := r.store.SetSetting(ctx, service.SettingAutoExportInterval, scheduler.Minutes(d)); err != nil {
		return err
	}
	r.logger.Info("Export interval configured", "minutes", int(d/time.Minute))
	return nil
}

// Handle processes a message if it comes from the monitored channel.
func (r *Runtime) Handle(ctx context.Context, msg feed.Message) (HandleResult, error) {
	channel, ok, err := r.Channel(ctx)
	if err != nil {
		return HandleResult{}, err
	}
	if !ok || msg.ChatID != channel {
		return HandleResult{Ignored: true}, nil
	}

	decision, err := r.Process(ctx, msg)
	return HandleResult{Decision: decision}, err
}

// Process classifies a message regardless of its channel.
func (r *Runtime) Process(ctx context.Context, msg feed.Message) (model.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug("Channel message", "kind", msg.Kind(), "id", msg.ID, "excerpt", model.Excerpt(msg.Text))
	if r.forward.Load() {
		r.forwardMessage(ctx, msg)
	}

	decision, err := r.engine.Process(ctx, msg.Text)
	if err != nil {
		r.logger.Error("Failed to process message", "id", msg.ID, "error", err)
		return decision, err
	}

	if !decision.Accepted() {
		// Edits arrive repeatedly while a round is still being played.
		if !(msg.Edited && decision.Outcome == model.OutcomeRejectedInProgress) {
			r.logger.Info("Message ignored", "kind", msg.Kind(), "outcome", decision.Outcome, "reason", decision.Reason)
		}
		return decision, nil
	}

	text := "Round recorded!\n" + decision.Reason
	if msg.Edited {
		records, listErr := r.store.ListAll(ctx)
		if listErr != nil {
			r.logger.Warn("Failed to load statistics for notification", "error", listErr)
		} else {
			text = "Round recorded (message finalized)!\n\n" + decision.Reason +
				"\n\nCurrent statistics:\n" + model.ComputeStatistics(records).Summary()
		}
	}
	r.notify(ctx, text)
	return decision, nil
}

// Statistics returns the current statistics.
func (r *Runtime) Statistics(ctx context.Context) (model.Statistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Statistics(ctx)
}

// Export writes every stored record and returns the report locator.
func (r *Runtime) Export(ctx context.Context) (string, error) {
	if r.writer == nil {
		return "", fmt.Errorf("no report writer configured")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.ListAll(ctx)
	if err != nil {
		return "", err
	}
	locator, err := r.writer.Write(ctx, records)
	if err != nil {
		return "", err
	}

	r.notify(ctx, fmt.Sprintf("Results exported (%d rounds): %s\n\nCurrent statistics:\n%s\n\nNext export in %s minutes",
		len(records), locator, model.ComputeStatistics(records).Summary(), scheduler.Minutes(r.ExportInterval(ctx))))
	return locator, nil
}

// ResetAndExport clears the store and writes an empty report for the new day.
func (r *Runtime) ResetAndExport(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Clear(ctx); err != nil {
		return "", err
	}
	r.logger.Info("Results reset")

	if r.writer == nil {
		r.notify(ctx, "Results reset.")
		return "", nil
	}

	// A failed empty report is not retried: retrying would clear rounds
	// recorded after the reset.
	locator, err := r.writer.Write(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to write empty report after reset", "error", err)
		r.notify(ctx, "Results reset, but the empty report could not be written.")
		return "", nil
	}

	r.notify(ctx, "Results reset. New empty report: "+locator)
	return locator, nil
}

func (r *Runtime) forwardMessage(ctx context.Context, msg feed.Message) {
	header := "Channel message:"
	if msg.Edited {
		header = "Channel message (edited):"
	}
	r.notify(ctx, header+"\n\n"+msg.Text)
}

func (r *Runtime) notify(ctx context.Context, text string) {
	if err := r.notifier.Notify(ctx, text); err != nil {
		r.logger.Warn("Failed to deliver notification", "error", err)
	}
}
