package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/suitwatch/internal/common"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)

func newTestEngine(store *MockStore) *ClassificationEngine {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return fixedNow }
	return NewWithConfig(store, cfg)
}

func TestClassificationEngine_Process(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantOutcome model.Outcome
		wantReason  string
	}{
		{
			name:        "accepted player round",
			message:     "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅",
			wantOutcome: model.OutcomeAccepted,
			wantReason:  "round #42 recorded - winner: Player",
		},
		{
			name:        "both groups three distinct suits",
			message:     "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️♠️) ✅",
			wantOutcome: model.OutcomeRejectedBothThreeSuits,
			wantReason:  model.ReasonBothThreeSuits,
		},
		{
			name:        "first group repeats a suit",
			message:     "#N 42. ▶️ 9(♠️♠️♥️) - 6(♦️♥️) ✅",
			wantOutcome: model.OutcomeRejectedFirstNot3Suits,
			wantReason:  model.ReasonFirstNotSuits,
		},
		{
			name:        "first group has two cards",
			message:     "#N 42. ▶️ 9(♠️♥️) - 6(♦️♥️) ✅",
			wantOutcome: model.OutcomeRejectedFirstNot3Suits,
			wantReason:  "first group does not have exactly 3 cards (2)",
		},
		{
			name:        "in progress marker wins over everything",
			message:     "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅ ⏰",
			wantOutcome: model.OutcomeRejectedInProgress,
			wantReason:  model.ReasonInProgress,
		},
		{
			name:        "not finalized",
			message:     "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️)",
			wantOutcome: model.OutcomeRejectedNotFinalized,
			wantReason:  model.ReasonNotFinalized,
		},
		{
			name:        "no round number",
			message:     "▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅",
			wantOutcome: model.OutcomeRejectedNoRoundNumber,
			wantReason:  model.ReasonNoRoundNumber,
		},
		{
			name:        "single group",
			message:     "#N 42. ▶️ 9(♠️♥️♣️) ✅",
			wantOutcome: model.OutcomeRejectedGroupCount,
			wantReason:  model.ReasonGroupCount,
		},
		{
			name:        "no resolvable winner",
			message:     "#N 42. 9(♠️♥️♣️) - 6(♦️♥️) 🔰",
			wantOutcome: model.OutcomeRejectedTie,
			wantReason:  model.ReasonTie,
		},
		{
			name:        "second group with repeated suit is not a mutual reject",
			message:     "#N 43. ▶️ 9(♠️♥️♣️) - 6(♦️♦️♥️) ✅",
			wantOutcome: model.OutcomeAccepted,
			wantReason:  "round #43 recorded - winner: Player",
		},
		{
			name:        "alternate heart does not count as a card",
			message:     "#N 7 ▶️ 9(♠️❤️♣️) - 6(♦️♥️) ✅",
			wantOutcome: model.OutcomeRejectedFirstNot3Suits,
			wantReason:  "first group does not have exactly 3 cards (2)",
		},
		{
			name:        "alternate heart keeps the second group below three cards",
			message:     "#N 8 ▶️ 9(♠️♥️♣️) - 6(♦️❤️♠️) ✅",
			wantOutcome: model.OutcomeAccepted,
			wantReason:  "round #8 recorded - winner: Player",
		},
		{
			name:        "banker via completion glyph",
			message:     "#N 44. 2(♠️♥️♣️) - 7(♦️♥️) ✅",
			wantOutcome: model.OutcomeAccepted,
			wantReason:  "round #44 recorded - winner: Banker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMockStore()
			eng := newTestEngine(store)

			decision, err := eng.Process(context.Background(), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, decision.Outcome)
			assert.Equal(t, tt.wantReason, decision.Reason)

			if tt.wantOutcome == model.OutcomeAccepted {
				require.NotNil(t, decision.Record)
				assert.Len(t, store.Records(), 1)
				assert.Equal(t, 1, store.AppendCalls)
			} else {
				assert.Nil(t, decision.Record)
				assert.Empty(t, store.Records())
				assert.Zero(t, store.AppendCalls)
			}
		})
	}
}

func TestClassificationEngine_AcceptedRecord(t *testing.T) {
	store := NewMockStore()
	eng := newTestEngine(store)

	msg := "#N 42. ▶️ 9( ♠️♥️♣️ ) - 6(♦️♥️) ✅ 05/11/2025 14:32"
	decision, err := eng.Process(context.Background(), msg)
	require.NoError(t, err)
	require.True(t, decision.Accepted())

	rec := decision.Record
	assert.Equal(t, 42, rec.RoundNumber)
	assert.Equal(t, model.WinnerPlayer, rec.Winner)
	assert.Equal(t, "♠️♥️♣️", rec.FirstGroupCards)
	assert.Equal(t, "2025-11-05", rec.Date)
	assert.Equal(t, "14:32:00", rec.Time)
	assert.Equal(t, msg, rec.Excerpt)
}

func TestClassificationEngine_TimestampFallback(t *testing.T) {
	eng := newTestEngine(NewMockStore())

	rec, _ := eng.Evaluate("#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅")
	require.NotNil(t, rec)
	assert.Equal(t, "2026-10-14", rec.Date)
	assert.Equal(t, "08:30:00", rec.Time)
}

func TestClassificationEngine_ExcerptTruncated(t *testing.T) {
	eng := newTestEngine(NewMockStore())

	msg := "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅ " + strings.Repeat("é", 300)
	rec, _ := eng.Evaluate(msg)
	require.NotNil(t, rec)
	assert.Equal(t, model.ExcerptLimit, len([]rune(rec.Excerpt)))
}

func TestClassificationEngine_Duplicate(t *testing.T) {
	store := NewMockStore()
	eng := newTestEngine(store)
	ctx := context.Background()

	first, err := eng.Process(ctx, "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅")
	require.NoError(t, err)
	require.True(t, first.Accepted())

	// Same round, different text and winner.
	again, err := eng.Process(ctx, "#N 42. 9(♠️♦️♣️) - ▶️ 6(♦️♥️) ✅")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeRejectedDuplicate, again.Outcome)
	assert.Equal(t, "round #42 already recorded", again.Reason)

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, model.WinnerPlayer, records[0].Winner)
	assert.Equal(t, 1, store.AppendCalls)
}

func TestClassificationEngine_DuplicateFromStoreConstraint(t *testing.T) {
	store := NewMockStore()
	store.AppendErr = common.ErrDuplicateEntry
	eng := newTestEngine(store)

	decision, err := eng.Process(context.Background(), "#N 7. ▶️ (♠️♥️♣️) - (♦️♥️) ✅")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeRejectedDuplicate, decision.Outcome)
}

func TestClassificationEngine_StoreFailure(t *testing.T) {
	t.Run("list failure", func(t *testing.T) {
		store := NewMockStore()
		store.ListErr = errors.New("disk gone")
		eng := newTestEngine(store)

		_, err := eng.Process(context.Background(), "#N 7. ▶️ (♠️♥️♣️) - (♦️♥️) ✅")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	})

	t.Run("append failure", func(t *testing.T) {
		store := NewMockStore()
		store.AppendErr = errors.New("read-only file system")
		eng := newTestEngine(store)

		_, err := eng.Process(context.Background(), "#N 7. ▶️ (♠️♥️♣️) - (♦️♥️) ✅")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "round 7")
	})

	t.Run("rejections never touch the store", func(t *testing.T) {
		store := NewMockStore()
		store.ListErr = errors.New("disk gone")
		eng := newTestEngine(store)

		decision, err := eng.Process(context.Background(), "#N 7. ▶️ (♠️♥️♣️) - (♦️♥️) ⏰")
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeRejectedInProgress, decision.Outcome)
		assert.Zero(t, store.ListCalls)
	})
}

func TestClassificationEngine_Statistics(t *testing.T) {
	store := NewMockStore()
	eng := newTestEngine(store)
	ctx := context.Background()

	messages := []string{
		"#N 1. ▶️ (♠️♥️♣️) - (♦️♥️) ✅",
		"#N 2. ▶️ (♠️♥️♦️) - (♦️♥️) ✅",
		"#N 3. ▶️ (♣️♥️♦️) - (♦️♥️) ✅",
		"#N 4. (♠️♥️♣️) - ▶️ (♦️♥️) ✅",
	}
	for _, msg := range messages {
		decision, err := eng.Process(ctx, msg)
		require.NoError(t, err)
		require.True(t, decision.Accepted(), decision.Reason)
	}

	stats, err := eng.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.PlayerWins)
	assert.Equal(t, 1, stats.BankerWins)
	assert.InDelta(t, 75.0, stats.PlayerRate, 1e-9)
	assert.InDelta(t, 25.0, stats.BankerRate, 1e-9)
}

func TestClassificationEngine_InProgressAlwaysWins(t *testing.T) {
	eng := newTestEngine(NewMockStore())

	messages := []string{
		"⏰",
		"⏰ ✅ #N 1 (♠️♥️♣️) - (♦️♥️)",
		"#N 1 garbage ⏰ 🔰",
	}
	for _, msg := range messages {
		rec, decision := eng.Evaluate(msg)
		assert.Nil(t, rec)
		assert.Equal(t, model.OutcomeRejectedInProgress, decision.Outcome, msg)
	}
}
