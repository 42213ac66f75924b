package household

import "context"

// Repository describes household persistence needs from use cases.
type Repository interface {
	ListActive(ctx context.Context) ([]Household, error)
	GetByID(ctx context.Context, householdID string) (Household, bool, error)
}
