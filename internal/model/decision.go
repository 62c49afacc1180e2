package model

import "fmt"

// Outcome is the terminal state of classifying one message.
type Outcome string

// Outcome constants, in the order the engine checks them.
const (
	OutcomeAccepted               Outcome = "ACCEPTED"
	OutcomeRejectedInProgress     Outcome = "REJECTED_IN_PROGRESS"
	OutcomeRejectedNotFinalized   Outcome = "REJECTED_NOT_FINALIZED"
	OutcomeRejectedNoRoundNumber  Outcome = "REJECTED_NO_ROUND_NUMBER"
	OutcomeRejectedGroupCount     Outcome = "REJECTED_GROUP_COUNT"
	OutcomeRejectedFirstNot3Suits Outcome = "REJECTED_FIRST_NOT_3_SUITS"
	OutcomeRejectedBothThreeSuits Outcome = "REJECTED_BOTH_THREE_SUITS"
	OutcomeRejectedTie            Outcome = "REJECTED_TIE"
	OutcomeRejectedDuplicate      Outcome = "REJECTED_DUPLICATE"
)

// Stable reason strings. Callers match on these.
const (
	ReasonInProgress     = "message still being edited (⏰ marker)"
	ReasonNotFinalized   = "message not finalized (no ✅ or 🔰 marker)"
	ReasonNoRoundNumber  = "no round number found"
	ReasonGroupCount     = "not enough bracketed groups"
	ReasonFirstNotSuits  = "first group does not have 3 different suits"
	ReasonBothThreeSuits = "both groups have 3 different suits - no prediction"
	ReasonTie            = "tie - no prediction"
)

// ReasonFirstCardCount is the reason for a first group without exactly three cards.
func ReasonFirstCardCount(count int) string {
	return fmt.Sprintf("first group does not have exactly 3 cards (%d)", count)
}

// ReasonDuplicate is the reason for a round that is already stored.
func ReasonDuplicate(round int) string {
	return fmt.Sprintf("round #%d already recorded", round)
}

// AcceptedInfo describes an accepted round.
func AcceptedInfo(round int, winner Winner) string {
	return fmt.Sprintf("round #%d recorded - winner: %s", round, winner)
}

// Decision is the immutable result of classifying one message.
type Decision struct {
	Record  *ResultRecord
	Outcome Outcome
	Reason  string
}

// Accepted reports whether the message produced a storable record.
func (d Decision) Accepted() bool {
	return d.Outcome == OutcomeAccepted
}

// Reject builds a rejected decision.
func Reject(outcome Outcome, reason string) Decision {
	return Decision{Outcome: outcome, Reason: reason}
}

// Accept builds an accepted decision for the given record.
func Accept(record ResultRecord) Decision {
	return Decision{
		Outcome: OutcomeAccepted,
		Reason:  AcceptedInfo(record.RoundNumber, record.Winner),
		Record:  &record,
	}
}
