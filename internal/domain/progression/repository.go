package progression

import "context"

// Repository describes progression persistence needs from use cases.
type Repository interface {
	// Get returns the member's state, creating the level 1 / 0 XP default
	// when none exists yet.
	Get(ctx context.Context, householdID, memberID string) (Progression, error)
	Set(ctx context.Context, p Progression) error
	// AddXP atomically adds amount to the member's total, recomputes the
	// level and returns the updated state. Concurrent awards for the same
	// member must serialize; neither increment may be lost.
	AddXP(ctx context.Context, householdID, memberID string, amount int) (Progression, error)
	ListByHousehold(ctx context.Context, householdID string) ([]Progression, error)
}
