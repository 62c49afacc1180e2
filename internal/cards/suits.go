// Package cards parses the card notation found in round result messages.
package cards

import "strings"

// Suit is one of the four canonical card suits.
type Suit string

// Canonical bare suit glyphs.
const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// variationSelector turns a bare suit glyph into its emoji presentation.
const variationSelector = "\uFE0F"

// Suits lists the canonical suits in a fixed order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Decorated returns the emoji-style encoding of the suit.
func (s Suit) Decorated() string {
	return string(s) + variationSelector
}

var heartsNormalizer = strings.NewReplacer(
	"❤"+variationSelector, Hearts.Decorated(),
	"❤", string(Hearts),
)

// Normalize collapses alternate hearts encodings onto the canonical hearts glyph.
// Other suits are left untouched.
func Normalize(group string) string {
	return heartsNormalizer.Replace(group)
}

// Tally counts the occurrences of each suit in a group after hearts
// normalization. A decorated glyph counts once and is not counted again as its
// bare glyph. Suits that do not appear are absent from the map.
func Tally(group string) map[Suit]int {
	return tally(Normalize(group))
}

func tally(group string) map[Suit]int {
	bare := group
	for _, s := range Suits {
		bare = strings.ReplaceAll(bare, s.Decorated(), "")
	}

	counts := make(map[Suit]int, len(Suits))
	for _, s := range Suits {
		if n := strings.Count(group, s.Decorated()) + strings.Count(bare, string(s)); n > 0 {
			counts[s] = n
		}
	}
	return counts
}

// CountCards returns the number of suit symbols in the raw group text. Only the
// canonical decorated and bare glyphs count; alternate hearts such as ❤ do not.
func CountCards(group string) int {
	total := 0
	for _, n := range tally(group) {
		total += n
	}
	return total
}

// HasThreeDistinctSuits reports whether the group holds exactly three cards of
// three different suits, each suit appearing once.
func HasThreeDistinctSuits(group string) bool {
	tally := Tally(group)
	if len(tally) != 3 {
		return false
	}
	for _, n := range tally {
		if n != 1 {
			return false
		}
	}
	return true
}
