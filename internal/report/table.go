// Package report builds the tabular export of recorded rounds.
package report

import (
	"fmt"
	"strings"

	"github.com/Veraticus/suitwatch/internal/model"
)

// Column headers of every export.
const (
	HeaderDateTime = "Date & Time"
	HeaderRound    = "Round"
	HeaderWinner   = "Winner (Player/Banker)"
)

// EmptyPlaceholder is the single data row of an export with no records.
const EmptyPlaceholder = "No results recorded."

const missingValue = "N/A"

// Table is a rendered export: one header row and zero or more data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table only carries the placeholder row.
func (t Table) Empty() bool {
	return len(t.Rows) == 1 && len(t.Rows[0]) == 1 && t.Rows[0][0] == EmptyPlaceholder
}

// BuildTable renders records in store order.
func BuildTable(records []model.ResultRecord) Table {
	table := Table{
		Headers: []string{HeaderDateTime, HeaderRound, HeaderWinner},
	}

	if len(records) == 0 {
		table.Rows = [][]string{{EmptyPlaceholder}}
		return table
	}

	table.Rows = make([][]string, 0, len(records))
	for _, r := range records {
		winner := r.Winner.String()
		if !r.Winner.IsValid() {
			winner = missingValue
		}
		table.Rows = append(table.Rows, []string{
			FormatDateTime(r.Date, r.Time),
			FormatRound(r.RoundNumber),
			winner,
		})
	}
	return table
}

// FormatDateTime turns "YYYY-MM-DD" and "HH:MM:SS" into "DD/MM/YYYY - HH:MM".
// Values that do not split as expected are kept verbatim.
func FormatDateTime(date, clock string) string {
	if date == "" || clock == "" {
		return missingValue
	}

	formattedDate := date
	if parts := strings.Split(date, "-"); len(parts) == 3 {
		formattedDate = parts[2] + "/" + parts[1] + "/" + parts[0]
	}

	formattedTime := clock
	if parts := strings.Split(clock, ":"); len(parts) >= 2 {
		formattedTime = parts[0] + ":" + parts[1]
	}

	return formattedDate + " - " + formattedTime
}

// FormatRound zero-pads a round number to three digits.
func FormatRound(n int) string {
	return fmt.Sprintf("%03d", n)
}
