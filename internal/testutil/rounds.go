package testutil

import (
	"fmt"
	"strings"

	"github.com/Veraticus/suitwatch/internal/model"
)

// RoundBuilder assembles result messages in the channel's format:
//
//	#N 42. ▶️ 9(♠️♥️♣️) - 6(♦️♥️) ✅
type RoundBuilder struct {
	player  string
	banker  string
	marker  string
	suffix  string
	winner  model.Winner
	round   int
	noRound bool
}

// NewRound starts a finalized Player win with a 3-suit first group.
func NewRound(round int) *RoundBuilder {
	return &RoundBuilder{
		round:  round,
		player: "♠️♥️♣️",
		banker: "♦️♥️",
		marker: "✅",
		winner: model.WinnerPlayer,
	}
}

// Player sets the first group's cards.
func (b *RoundBuilder) Player(cards string) *RoundBuilder {
	b.player = cards
	return b
}

// Banker sets the second group's cards.
func (b *RoundBuilder) Banker(cards string) *RoundBuilder {
	b.banker = cards
	return b
}

// WinnerSide places the direction marker on the winning side. WinnerNone drops it.
func (b *RoundBuilder) WinnerSide(w model.Winner) *RoundBuilder {
	b.winner = w
	return b
}

// Marker replaces the trailing status marker, e.g. "⏰" or "🔰".
func (b *RoundBuilder) Marker(m string) *RoundBuilder {
	b.marker = m
	return b
}

// WithoutRound omits the "#N" identifier.
func (b *RoundBuilder) WithoutRound() *RoundBuilder {
	b.noRound = true
	return b
}

// Suffix appends free text, such as a timestamp.
func (b *RoundBuilder) Suffix(s string) *RoundBuilder {
	b.suffix = s
	return b
}

// String renders the message.
func (b *RoundBuilder) String() string {
	var parts []string
	if !b.noRound {
		parts = append(parts, fmt.Sprintf("#N %d.", b.round))
	}

	player := fmt.Sprintf("9(%s)", b.player)
	banker := fmt.Sprintf("6(%s)", b.banker)
	switch b.winner {
	case model.WinnerPlayer:
		player = "▶️ " + player
	case model.WinnerBanker:
		banker = "▶️ " + banker
	}
	parts = append(parts, player, "-", banker)

	if b.marker != "" {
		parts = append(parts, b.marker)
	}
	if b.suffix != "" {
		parts = append(parts, b.suffix)
	}
	return strings.Join(parts, " ")
}
