package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/choreworld/choreworld/internal/domain/household"
	qb "github.com/choreworld/choreworld/internal/platform/querybuilder"
)

type HouseholdRepository struct {
	db *sqlx.DB
}

func NewHouseholdRepository(db *sqlx.DB) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

func (r *HouseholdRepository) ListActive(ctx context.Context) ([]household.Household, error) {
	query, args, err := qb.Select("*").
		From("households").
		Where(
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list households query: %w", err)
	}

	var rows []householdTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}

	out := make([]household.Household, 0, len(rows))
	for _, row := range rows {
		out = append(out, household.Household{
			ID:       row.PublicID,
			Name:     row.Name,
			IsActive: row.IsActive,
		})
	}
	return out, nil
}

func (r *HouseholdRepository) GetByID(ctx context.Context, householdID string) (household.Household, bool, error) {
	query, args, err := qb.Select("*").
		From("households").
		Where(
			qb.Eq("public_id", householdID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return household.Household{}, false, fmt.Errorf("build get household query: %w", err)
	}

	var row householdTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return household.Household{}, false, nil
		}
		return household.Household{}, false, fmt.Errorf("get household: %w", err)
	}

	return household.Household{
		ID:       row.PublicID,
		Name:     row.Name,
		IsActive: row.IsActive,
	}, true, nil
}
