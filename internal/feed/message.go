// Package feed decodes the inbound message stream of the monitored channel.
package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Message is one inbound channel event. Edits arrive as separate messages
// with Edited set and are classified independently of the original.
type Message struct {
	Date   time.Time `json:"date,omitempty"`
	ID     string    `json:"id,omitempty"`
	Text   string    `json:"text"`
	ChatID int64     `json:"chat_id"`
	Edited bool      `json:"edited,omitempty"`
}

// Kind returns "edited" or "new" for logging.
func (m Message) Kind() string {
	if m.Edited {
		return "edited"
	}
	return "new"
}

const (
	legacyChannelPrefix  = "-207"
	channelPrefix        = "-100"
	legacyChannelIDWidth = 14
)

// NormalizeChannelID rewrites legacy -207XXXXXXXXXX ids to the -100 form.
func NormalizeChannelID(id int64) int64 {
	s := strconv.FormatInt(id, 10)
	if len(s) != legacyChannelIDWidth || !strings.HasPrefix(s, legacyChannelPrefix) {
		return id
	}
	normalized, err := strconv.ParseInt(channelPrefix+s[len(legacyChannelPrefix):], 10, 64)
	if err != nil {
		return id
	}
	return normalized
}

// ParseChannelID parses and normalizes a channel id given as text.
func ParseChannelID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid channel id %q: %w", s, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid channel id %q: must be non-zero", s)
	}
	return NormalizeChannelID(id), nil
}
