package household

import "fmt"

// Household is a family unit whose members share chores and duty rotations.
type Household struct {
	ID       string
	Name     string
	IsActive bool
}

func (h Household) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("household id is required")
	}
	if h.Name == "" {
		return fmt.Errorf("household name is required")
	}

	return nil
}
