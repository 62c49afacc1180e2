// Package scheduler runs the periodic export and the daily reset.
package scheduler

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Veraticus/suitwatch/internal/common"
)

// Auto-export interval bounds.
const (
	DefaultExportInterval = 60 * time.Minute
	MinExportInterval     = 5 * time.Minute
	MaxExportInterval     = 24 * time.Hour
)

// Delays before a failed job runs again.
const (
	ExportRetryDelay = time.Minute
	ResetRetryDelay  = time.Hour
)

// ErrInvalidInterval reports an unparseable or out-of-range interval.
var ErrInvalidInterval = errors.New("invalid export interval")

var intervalPattern = regexp.MustCompile(`^(\d+)\s*([mhMH])$`)

// ParseInterval parses "30m" or "2h" and enforces the interval bounds.
func ParseInterval(s string) (time.Duration, error) {
	match := intervalPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, common.NewUserError(fmt.Sprintf("invalid interval %q: use a number followed by m or h (e.g. 30m, 2h)", s), ErrInvalidInterval)
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("invalid interval %q", s), err)
	}

	unit := time.Minute
	if match[2] == "h" || match[2] == "H" {
		unit = time.Hour
	}

	d := time.Duration(value) * unit
	if err := ValidateInterval(d); err != nil {
		return 0, err
	}
	return d, nil
}

// ValidateInterval checks d against the allowed range.
func ValidateInterval(d time.Duration) error {
	if d < MinExportInterval || d > MaxExportInterval {
		return common.NewUserError("the interval must be between 5 minutes and 24 hours",
			fmt.Errorf("%w: %s", ErrInvalidInterval, d))
	}
	return nil
}

// Minutes returns the stored representation of an interval.
func Minutes(d time.Duration) string {
	return strconv.Itoa(int(d / time.Minute))
}

// FromMinutes decodes a stored interval, falling back to the default when the
// value is unreadable or out of range.
func FromMinutes(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultExportInterval
	}
	d := time.Duration(n) * time.Minute
	if ValidateInterval(d) != nil {
		return DefaultExportInterval
	}
	return d
}

// NextReset returns the next daily reset instant strictly after now, at
// resetHour:00 in the zone offset hours east of UTC. When now is at or past
// the reset hour the reset moves to the following day.
func NextReset(now time.Time, offsetHours, resetHour int) time.Time {
	zone := time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
	local := now.In(zone)

	next := time.Date(local.Year(), local.Month(), local.Day(), resetHour, 0, 0, 0, zone)
	if local.Hour() >= resetHour {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
