package member

import "context"

// Repository describes member reads from use cases. Members are owned by the
// account service; this side only lists and resolves them.
type Repository interface {
	// ListEligible returns eligible members in creation order. Creation order
	// is the stable fallback sequence for rotation candidates.
	ListEligible(ctx context.Context, householdID string) ([]Member, error)
	GetByID(ctx context.Context, householdID, memberID string) (Member, bool, error)
}
