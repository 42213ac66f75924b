package duty

import (
	"fmt"
	"time"
)

// Type is a category of rotating weekly responsibility, e.g. dish duty.
type Type struct {
	ID          string
	HouseholdID string
	Name        string
	Icon        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Type) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("duty type id is required")
	}
	if t.HouseholdID == "" {
		return fmt.Errorf("duty type household id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("duty type name is required")
	}

	return nil
}

// RotationOrder is the configured cyclic sequence for one duty type. Eligible
// members missing from the list are appended at rotation time, so a partial
// order still reaches everyone.
type RotationOrder struct {
	HouseholdID string
	DutyTypeID  string
	MemberIDs   []string
	UpdatedAt   time.Time
}
