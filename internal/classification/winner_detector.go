// Package classification infers the winning side of a round from its message text.
package classification

import (
	"github.com/Veraticus/suitwatch/internal/model"
)

// Rule is one winner heuristic. Infer returns false when the rule is not decisive.
type Rule struct {
	Infer func(message string) (model.Winner, bool)
	Name  string
}

// Match represents a decisive rule result.
type Match struct {
	RuleName string
	Winner   model.Winner
}

// WinnerDetector evaluates rules in order; the first decisive rule wins.
type WinnerDetector struct {
	rules []Rule
}

// NewWinnerDetector creates a detector over the given ordered rules.
func NewWinnerDetector(rules []Rule) *WinnerDetector {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	return &WinnerDetector{rules: ordered}
}

// NewDefaultWinnerDetector creates a detector with DefaultRules.
func NewDefaultWinnerDetector() *WinnerDetector {
	return NewWinnerDetector(DefaultRules())
}

// Classify returns the first decisive match, or nil when the round is a tie or
// cannot be resolved.
func (d *WinnerDetector) Classify(message string) *Match {
	for _, rule := range d.rules {
		if winner, ok := rule.Infer(message); ok {
			return &Match{RuleName: rule.Name, Winner: winner}
		}
	}
	return nil
}

// Winner returns the inferred winner, or model.WinnerNone.
func (d *WinnerDetector) Winner(message string) model.Winner {
	if m := d.Classify(message); m != nil {
		return m.Winner
	}
	return model.WinnerNone
}

// RuleNames returns the rule names in evaluation order.
func (d *WinnerDetector) RuleNames() []string {
	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.Name
	}
	return names
}
