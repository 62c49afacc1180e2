package cards

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Layouts of the stored date and time-of-day strings.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

var (
	datePattern      = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
	timeOfDayPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
)

// ExtractTimestamp returns the date (YYYY-MM-DD) and time (HH:MM:SS) embedded in
// the message, read as day-month-year. It falls back to now when either token is
// missing or names an impossible instant. Values such as 31/02/2024 or 24:00 are
// not stored as written; the record gets the current date and time instead.
func ExtractTimestamp(message string, now time.Time) (date, clock string) {
	if t, ok := parseTimestamp(message, now.Location()); ok {
		return t.Format(DateLayout), t.Format(TimeLayout)
	}
	return now.Format(DateLayout), now.Format(TimeLayout)
}

// parseTimestamp reports false for calendar-invalid dates and out-of-range clock
// fields, so callers never see a normalized (rolled-over) instant.
func parseTimestamp(message string, loc *time.Location) (time.Time, bool) {
	dm := datePattern.FindStringSubmatch(message)
	tm := timeOfDayPattern.FindStringSubmatch(message)
	if dm == nil || tm == nil {
		return time.Time{}, false
	}

	yearText := dm[3]
	if len(yearText) == 2 {
		yearText = "20" + yearText
	}
	if len(yearText) != 4 {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(dm[1])
	month, _ := strconv.Atoi(dm[2])
	year, _ := strconv.Atoi(yearText)
	hour, _ := strconv.Atoi(tm[1])
	minute, _ := strconv.Atoi(tm[2])
	second := 0
	if tm[3] != "" {
		second, _ = strconv.Atoi(tm[3])
	}

	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	text := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", year, month, day, hour, minute, second)
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, text, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
