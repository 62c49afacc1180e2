package testutil

import (
	"testing"

	"github.com/Veraticus/suitwatch/internal/engine"
	"github.com/Veraticus/suitwatch/internal/model"
	"github.com/Veraticus/suitwatch/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder *RoundBuilder
		want    string
		outcome model.Outcome
		winner  model.Winner
	}{
		{
			name:    "player win",
			builder: NewRound(42),
			want:    "#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅",
			outcome: model.OutcomeAccepted,
			winner:  model.WinnerPlayer,
		},
		{
			name:    "banker win with beginner marker",
			builder: NewRound(7).WinnerSide(model.WinnerBanker).Marker("🔰"),
			want:    "#N 7. 9(♠️♥️♣️) - ▶️ 6(♦️♥️) 🔰",
			outcome: model.OutcomeAccepted,
			winner:  model.WinnerBanker,
		},
		{
			name:    "in progress",
			builder: NewRound(8).Marker("⏰"),
			want:    "#N 8. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ⏰",
			outcome: model.OutcomeRejectedInProgress,
		},
		{
			name:    "both three suits",
			builder: NewRound(9).Banker("♦️♥️♠️"),
			want:    "#N 9. ▶️ 9(♠️♥️♣️) - 6(♦️♥️♠️) ✅",
			outcome: model.OutcomeRejectedBothThreeSuits,
		},
		{
			name:    "missing round",
			builder: NewRound(0).WithoutRound(),
			want:    "▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅",
			outcome: model.OutcomeRejectedNoRoundNumber,
		},
	}

	eng := engine.New(engine.NewMockStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.builder.String()
			assert.Equal(t, tt.want, msg)

			rec, decision := eng.Evaluate(msg)
			if tt.outcome == model.OutcomeAccepted {
				require.NotNil(t, rec)
				assert.Equal(t, tt.winner, rec.Winner)
				return
			}
			assert.Nil(t, rec)
			assert.Equal(t, tt.outcome, decision.Outcome)
		})
	}
}

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t, Record(1, model.WinnerPlayer), Record(2, model.WinnerBanker))

	records := db.MustListAll()
	require.Len(t, records, 2)
	assert.Equal(t, model.WinnerBanker, records[1].Winner)

	db.MustSetSetting(service.SettingAutoExportInterval, "30")
}
