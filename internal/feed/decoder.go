package feed

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformedLine marks a line that is not a valid message object. The
// decoder stays usable after returning it.
var ErrMalformedLine = errors.New("malformed message line")

// maxLineSize bounds a single JSON line.
const maxLineSize = 1024 * 1024

// Decoder reads JSON-lines messages from a stream.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{scanner: scanner}
}

// Line returns the number of the last line read.
func (d *Decoder) Line() int {
	return d.line
}

// Next returns the next message. Blank lines are skipped. A line that does not
// parse as an object is treated as a plain-text new message only when it does
// not start with '{'. Messages without an id get a random one. Returns io.EOF
// at the end of the stream.
func (d *Decoder) Next() (Message, error) {
	for d.scanner.Scan() {
		d.line++
		raw := strings.TrimSpace(d.scanner.Text())
		if raw == "" {
			continue
		}

		var msg Message
		if strings.HasPrefix(raw, "{") {
			if err := json.Unmarshal([]byte(raw), &msg); err != nil {
				return Message{}, fmt.Errorf("%w at line %d: %w", ErrMalformedLine, d.line, err)
			}
		} else {
			msg.Text = raw
		}

		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		return msg, nil
	}

	if err := d.scanner.Err(); err != nil {
		return Message{}, fmt.Errorf("failed to read feed: %w", err)
	}
	return Message{}, io.EOF
}

// ReadAll decodes every message, collecting malformed lines instead of stopping.
func ReadAll(r io.Reader) ([]Message, []error, error) {
	d := NewDecoder(r)
	var messages []Message
	var malformed []error
	for {
		msg, err := d.Next()
		switch {
		case err == nil:
			messages = append(messages, msg)
		case errors.Is(err, io.EOF):
			return messages, malformed, nil
		case errors.Is(err, ErrMalformedLine):
			malformed = append(malformed, err)
		default:
			return messages, malformed, err
		}
	}
}
