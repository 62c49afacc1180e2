package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/suitwatch/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrInvalidRecord  = errors.New("invalid result record")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord checks the invariants every stored round must satisfy.
func validateRecord(record model.ResultRecord) error {
	if record.RoundNumber < 0 {
		return fmt.Errorf("%w: negative round number %d", ErrInvalidRecord, record.RoundNumber)
	}
	if !record.Winner.IsValid() {
		return fmt.Errorf("%w: winner %q", ErrInvalidRecord, record.Winner)
	}
	if record.Date == "" || record.Time == "" {
		return fmt.Errorf("%w: missing date or time", ErrInvalidRecord)
	}
	if utf8.RuneCountInString(record.Excerpt) > model.ExcerptLimit {
		return fmt.Errorf("%w: excerpt longer than %d characters", ErrInvalidRecord, model.ExcerptLimit)
	}
	return nil
}
