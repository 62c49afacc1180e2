package cards

import (
	"regexp"
	"strconv"
)

// Round number patterns, tried in order.
var roundPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)#N\s*(\d+)\.?`),
	regexp.MustCompile(`(?i)jeu\s*#?\s*(\d+)`),
}

// ExtractRoundNumber finds the round number in a message. The boolean is false
// when no pattern matches or the digits do not fit an int.
func ExtractRoundNumber(message string) (int, bool) {
	for _, re := range roundPatterns {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
