// Package model defines the core domain models used throughout the application.
package model

// Winner identifies which side won a round.
type Winner string

// Winner constants.
const (
	WinnerNone   Winner = ""
	WinnerPlayer Winner = "Player"
	WinnerBanker Winner = "Banker"
)

// IsValid reports whether the winner is one of the storable sides.
func (w Winner) IsValid() bool {
	return w == WinnerPlayer || w == WinnerBanker
}

// String returns the winner label.
func (w Winner) String() string {
	if w == WinnerNone {
		return "None"
	}
	return string(w)
}

// ResultRecord is a persisted, accepted round.
type ResultRecord struct {
	Date            string `yaml:"date" json:"date"`
	Time            string `yaml:"time" json:"time"`
	FirstGroupCards string `yaml:"first_group_cards" json:"first_group_cards"`
	Winner          Winner `yaml:"winner" json:"winner"`
	Excerpt         string `yaml:"excerpt" json:"excerpt"`
	RoundNumber     int    `yaml:"round_number" json:"round_number"`
}

// ExcerptLimit is the maximum number of characters kept from the raw message.
const ExcerptLimit = 200

// Excerpt truncates a message to ExcerptLimit characters.
func Excerpt(message string) string {
	runes := []rune(message)
	if len(runes) <= ExcerptLimit {
		return message
	}
	return string(runes[:ExcerptLimit])
}
