package duty

import "context"

// Repository describes duty type and rotation order persistence needs.
type Repository interface {
	ListActive(ctx context.Context, householdID string) ([]Type, error)
	GetByID(ctx context.Context, householdID, dutyTypeID string) (Type, bool, error)
	Create(ctx context.Context, t Type) error
	Update(ctx context.Context, t Type) error
	Deactivate(ctx context.Context, householdID, dutyTypeID string) error

	// GetRotationOrder returns the configured order, empty when unconfigured.
	GetRotationOrder(ctx context.Context, householdID, dutyTypeID string) ([]string, error)
	SetRotationOrder(ctx context.Context, householdID, dutyTypeID string, memberIDs []string) error
}
