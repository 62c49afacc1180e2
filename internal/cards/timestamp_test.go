package cards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name      string
		message   string
		wantDate  string
		wantClock string
	}{
		{
			name:      "full date and time",
			message:   "#N 1 le 05/11/2025 à 14:32:10",
			wantDate:  "2025-11-05",
			wantClock: "14:32:10",
		},
		{
			name:      "seconds padded",
			message:   "#N 1 05-11-2025 14:32",
			wantDate:  "2025-11-05",
			wantClock: "14:32:00",
		},
		{
			name:      "two digit year and single digits",
			message:   "5.1.25 9:05",
			wantDate:  "2025-01-05",
			wantClock: "09:05:00",
		},
		{
			name:      "no time falls back",
			message:   "05/11/2025",
			wantDate:  "2026-03-14",
			wantClock: "09:26:53",
		},
		{
			name:      "no date falls back",
			message:   "14:32",
			wantDate:  "2026-03-14",
			wantClock: "09:26:53",
		},
		{
			name:      "invalid month falls back",
			message:   "05/13/2025 14:32",
			wantDate:  "2026-03-14",
			wantClock: "09:26:53",
		},
		{
			name:      "impossible day falls back",
			message:   "31/02/2024 14:32",
			wantDate:  "2026-03-14",
			wantClock: "09:26:53",
		},
		{
			name:      "hour 24 falls back",
			message:   "05/11/2025 24:00",
			wantDate:  "2026-03-14",
			wantClock: "09:26:53",
		},
		{
			name:      "invalid hour falls back",
			message:   "05/11/2025 25:32",
			wantDate:  "2026-03-14",
			wantClock: "09:26:53",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock := ExtractTimestamp(tt.message, now)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantClock, clock)
		})
	}
}
