package model

import "fmt"

// PaidStatus tracks a guest entry through the payment claim flow. A guest
// marks their own entry PartiallyPaid, the event host verifies it to
// FullyPaid. No skips, no reverse transitions.
type PaidStatus int

const (
	NotPaid       PaidStatus = 0
	PartiallyPaid PaidStatus = 1
	FullyPaid     PaidStatus = 2
)

func (s PaidStatus) String() string {
	switch s {
	case NotPaid:
		return "not_paid"
	case PartiallyPaid:
		return "partially_paid"
	case FullyPaid:
		return "fully_paid"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Valid reports whether s is one of the three known statuses.
func (s PaidStatus) Valid() bool {
	return s >= NotPaid && s <= FullyPaid
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s PaidStatus) CanTransitionTo(next PaidStatus) bool {
	return next == s+1 && next.Valid()
}
