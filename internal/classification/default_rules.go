package classification

import (
	"regexp"
	"strings"

	"github.com/Veraticus/suitwatch/internal/model"
)

// Glyphs and delimiters the rules look for.
const (
	DirectionMarker = "▶️"
	CheckMark       = "✅"
	TargetMark      = "🎯"

	sideDelimiter = " - "
	pipeDelimiter = "|"
)

// Rule names, in evaluation order.
const (
	RuleDirectionMarker = "direction-marker"
	RuleKeyword         = "keyword"
	RuleCompletionGlyph = "completion-glyph"
	RuleTrailingLetter  = "trailing-letter"
)

var (
	playerKeywords = []string{"JOUEUR", "PLAYER", "J GAGNE", "VICTOIRE J"}
	bankerKeywords = []string{"BANQUIER", "BANKER", "B GAGNE", "VICTOIRE B"}

	trailingLetterPattern = regexp.MustCompile(`(?i)\)\s*-\s*\([^)]*\)\s*([PB])`)
)

// DefaultRules returns the winner heuristics in decreasing order of confidence.
// Reordering them changes results for messages that match more than one rule.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleDirectionMarker, Infer: inferFromDirectionMarker},
		{Name: RuleKeyword, Infer: inferFromKeywords},
		{Name: RuleCompletionGlyph, Infer: inferFromCompletionGlyph},
		{Name: RuleTrailingLetter, Infer: inferFromTrailingLetter},
	}
}

// inferFromDirectionMarker looks for ▶️ on either side of " - ".
func inferFromDirectionMarker(message string) (model.Winner, bool) {
	return sideHolding(strings.Split(message, sideDelimiter), DirectionMarker)
}

func inferFromKeywords(message string) (model.Winner, bool) {
	upper := strings.ToUpper(message)
	if containsAny(upper, playerKeywords...) {
		return model.WinnerPlayer, true
	}
	if containsAny(upper, bankerKeywords...) {
		return model.WinnerBanker, true
	}
	return model.WinnerNone, false
}

// inferFromCompletionGlyph splits on "|" when present, otherwise on " - ".
func inferFromCompletionGlyph(message string) (model.Winner, bool) {
	if !containsAny(message, CheckMark, TargetMark) {
		return model.WinnerNone, false
	}
	parts := strings.Split(message, pipeDelimiter)
	if len(parts) < 2 {
		parts = strings.Split(message, sideDelimiter)
	}
	return sideHolding(parts, CheckMark, TargetMark)
}

func inferFromTrailingLetter(message string) (model.Winner, bool) {
	m := trailingLetterPattern.FindStringSubmatch(message)
	if m == nil {
		return model.WinnerNone, false
	}
	if strings.EqualFold(m[1], "P") {
		return model.WinnerPlayer, true
	}
	return model.WinnerBanker, true
}

// sideHolding maps a glyph in part 0 to Player and in part 1 to Banker.
func sideHolding(parts []string, glyphs ...string) (model.Winner, bool) {
	if len(parts) < 2 {
		return model.WinnerNone, false
	}
	if containsAny(parts[0], glyphs...) {
		return model.WinnerPlayer, true
	}
	if containsAny(parts[1], glyphs...) {
		return model.WinnerBanker, true
	}
	return model.WinnerNone, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
