package cards

import "regexp"

var groupPattern = regexp.MustCompile(`\(([^)]*)\)`)

// ExtractGroups returns the contents of every (...) pair in order of appearance.
func ExtractGroups(message string) []string {
	matches := groupPattern.FindAllStringSubmatch(message, -1)
	groups := make([]string, 0, len(matches))
	for _, m := range matches {
		groups = append(groups, m[1])
	}
	return groups
}
