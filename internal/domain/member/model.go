package member

import "time"

// Member is a person in a household. Only eligible members receive scheduled
// assignments; account management itself lives in the account service.
type Member struct {
	ID          string
	HouseholdID string
	DisplayName string
	IsEligible  bool
	CreatedAt   time.Time
}

// Principal is the authenticated caller as resolved by the account service.
// Privileged callers may act on records they do not own.
type Principal struct {
	MemberID    string
	HouseholdID string
	DisplayName string
	Privileged  bool
}

func (p Principal) CanActFor(memberID string) bool {
	return p.Privileged || p.MemberID == memberID
}
