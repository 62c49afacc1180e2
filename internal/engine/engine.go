// Package engine implements the classification engine that turns round result
// messages into stored records or rejection reasons.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/suitwatch/internal/cards"
	"github.com/Veraticus/suitwatch/internal/classification"
	"github.com/Veraticus/suitwatch/internal/common"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/Veraticus/suitwatch/internal/service"
)

// Message markers.
const (
	InProgressMarker = "⏰"
	CheckMarker      = "✅"
	BeginnerMarker   = "🔰"
)

// FinalizationMarkers signal that the upstream producer finished editing a message.
var FinalizationMarkers = []string{CheckMarker, BeginnerMarker}

// ClassificationEngine decides, per message, whether a round is stored.
// It keeps no state between messages; callers serialize calls that share a store.
type ClassificationEngine struct {
	store   service.ResultStore
	winners *classification.WinnerDetector
	now     func() time.Time
}

// Config holds configuration options for the classification engine.
type Config struct {
	Now         func() time.Time
	WinnerRules []classification.Rule
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Now:         time.Now,
		WinnerRules: classification.DefaultRules(),
	}
}

// New creates a new classification engine backed by store.
func New(store service.ResultStore) *ClassificationEngine {
	return NewWithConfig(store, DefaultConfig())
}

// NewWithConfig creates a new classification engine with custom configuration.
func NewWithConfig(store service.ResultStore, config Config) *ClassificationEngine {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.WinnerRules == nil {
		config.WinnerRules = classification.DefaultRules()
	}
	return &ClassificationEngine{
		store:   store,
		winners: classification.NewWinnerDetector(config.WinnerRules),
		now:     config.Now,
	}
}

// Evaluate runs the store-independent eligibility checks in their fixed order.
// It returns the candidate record when every check passes; otherwise the record
// is nil and the decision carries the rejection.
func (e *ClassificationEngine) Evaluate(message string) (*model.ResultRecord, model.Decision) {
	if strings.Contains(message, InProgressMarker) {
		return nil, model.Reject(model.OutcomeRejectedInProgress, model.ReasonInProgress)
	}
	if !containsAny(message, FinalizationMarkers) {
		return nil, model.Reject(model.OutcomeRejectedNotFinalized, model.ReasonNotFinalized)
	}

	round, ok := cards.ExtractRoundNumber(message)
	if !ok {
		return nil, model.Reject(model.OutcomeRejectedNoRoundNumber, model.ReasonNoRoundNumber)
	}

	groups := cards.ExtractGroups(message)
	if len(groups) < 2 {
		return nil, model.Reject(model.OutcomeRejectedGroupCount, model.ReasonGroupCount)
	}
	first, second := groups[0], groups[1]

	firstCount := cards.CountCards(first)
	slog.Debug("Card groups parsed",
		"round", round,
		"first_group", first,
		"first_count", firstCount,
		"second_group", second)

	if firstCount != 3 {
		return nil, model.Reject(model.OutcomeRejectedFirstNot3Suits, model.ReasonFirstCardCount(firstCount))
	}
	if !cards.HasThreeDistinctSuits(first) {
		return nil, model.Reject(model.OutcomeRejectedFirstNot3Suits, model.ReasonFirstNotSuits)
	}
	if cards.CountCards(second) == 3 && cards.HasThreeDistinctSuits(second) {
		return nil, model.Reject(model.OutcomeRejectedBothThreeSuits, model.ReasonBothThreeSuits)
	}

	winner := e.winners.Winner(message)
	if !winner.IsValid() {
		return nil, model.Reject(model.OutcomeRejectedTie, model.ReasonTie)
	}

	date, clock := cards.ExtractTimestamp(message, e.now())
	return &model.ResultRecord{
		RoundNumber:     round,
		Date:            date,
		Time:            clock,
		FirstGroupCards: strings.TrimSpace(first),
		Winner:          winner,
		Excerpt:         model.Excerpt(message),
	}, model.Decision{}
}

// Process classifies one message and appends it to the store when accepted.
// Rejections are returned as decisions; only store failures are errors.
func (e *ClassificationEngine) Process(ctx context.Context, message string) (model.Decision, error) {
	record, rejection := e.Evaluate(message)
	if record == nil {
		slog.Debug("Message rejected", "outcome", rejection.Outcome, "reason", rejection.Reason)
		return rejection, nil
	}

	existing, err := e.store.ListAll(ctx)
	if err != nil {
		return model.Decision{}, fmt.Errorf("%w: failed to load results: %w", common.ErrStoreUnavailable, err)
	}
	for _, r := range existing {
		if r.RoundNumber == record.RoundNumber {
			slog.Info("Round already recorded", "round", record.RoundNumber)
			return model.Reject(model.OutcomeRejectedDuplicate, model.ReasonDuplicate(record.RoundNumber)), nil
		}
	}

	if err := e.store.Append(ctx, *record); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return model.Reject(model.OutcomeRejectedDuplicate, model.ReasonDuplicate(record.RoundNumber)), nil
		}
		return model.Decision{}, fmt.Errorf("%w: failed to save round %d: %w", common.ErrStoreUnavailable, record.RoundNumber, err)
	}

	slog.Info("Round recorded",
		"round", record.RoundNumber,
		"winner", record.Winner,
		"date", record.Date,
		"time", record.Time)

	return model.Accept(*record), nil
}

// Statistics recomputes win counts from the full store contents.
func (e *ClassificationEngine) Statistics(ctx context.Context) (model.Statistics, error) {
	records, err := e.store.ListAll(ctx)
	if err != nil {
		return model.Statistics{}, fmt.Errorf("%w: failed to load results: %w", common.ErrStoreUnavailable, err)
	}
	return model.ComputeStatistics(records), nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
