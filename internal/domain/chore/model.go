package chore

import (
	"fmt"
	"time"
)

// Chore is a recurring task definition. Bonus chores are opt-in and award
// double experience; the daily scheduler never hands them out.
type Chore struct {
	ID          string
	HouseholdID string
	Name        string
	Description string
	Points      int
	IsBonus     bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Chore) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("chore id is required")
	}
	if c.HouseholdID == "" {
		return fmt.Errorf("chore household id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("chore name is required")
	}
	if c.Points < 0 {
		return fmt.Errorf("chore points must be >= 0")
	}

	return nil
}
