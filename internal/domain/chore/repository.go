package chore

import "context"

// Repository describes chore catalog persistence needs from use cases.
type Repository interface {
	ListActive(ctx context.Context, householdID string) ([]Chore, error)
	GetByID(ctx context.Context, householdID, choreID string) (Chore, bool, error)
	Create(ctx context.Context, c Chore) error
	Update(ctx context.Context, c Chore) error
	// Deactivate soft-deletes; assignment history keeps referring to the row.
	Deactivate(ctx context.Context, householdID, choreID string) error
}
