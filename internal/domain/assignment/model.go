package assignment

import (
	"fmt"
	"time"
)

// Daily is one chore handed to one member for one calendar date. At most one
// record per (household, member, date) unless an administrator overrides.
type Daily struct {
	ID          string
	HouseholdID string
	MemberID    string
	ChoreID     string
	ChoreName   string
	Points      int
	IsBonus     bool
	Date        time.Time
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

func (d Daily) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("daily assignment id is required")
	}
	if d.HouseholdID == "" {
		return fmt.Errorf("daily assignment household id is required")
	}
	if d.MemberID == "" {
		return fmt.Errorf("daily assignment member id is required")
	}
	if d.ChoreID == "" {
		return fmt.Errorf("daily assignment chore id is required")
	}
	if d.Date.IsZero() {
		return fmt.Errorf("daily assignment date is required")
	}

	return nil
}

// Weekly is one rotation slot: a member holds a duty type for one period.
// Superseded records are deactivated, never deleted.
type Weekly struct {
	ID          string
	HouseholdID string
	DutyTypeID  string
	MemberID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	IsActive    bool
	CreatedAt   time.Time
}

func (w Weekly) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("weekly assignment id is required")
	}
	if w.HouseholdID == "" {
		return fmt.Errorf("weekly assignment household id is required")
	}
	if w.DutyTypeID == "" {
		return fmt.Errorf("weekly assignment duty type id is required")
	}
	if w.MemberID == "" {
		return fmt.Errorf("weekly assignment member id is required")
	}
	if w.PeriodStart.IsZero() || w.PeriodEnd.IsZero() {
		return fmt.Errorf("weekly assignment period is required")
	}
	if w.PeriodEnd.Before(w.PeriodStart) {
		return fmt.Errorf("weekly assignment period end before start")
	}

	return nil
}

// Completion is the audit record written when an assignment is marked done.
type Completion struct {
	ID          string
	HouseholdID string
	MemberID    string
	ChoreID     string
	Points      int
	XPAwarded   int
	PeriodStart time.Time
	CompletedAt time.Time
}
