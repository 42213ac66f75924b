package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/choreworld/choreworld/internal/domain/chore"
	qb "github.com/choreworld/choreworld/internal/platform/querybuilder"
)

type ChoreRepository struct {
	db *sqlx.DB
}

func NewChoreRepository(db *sqlx.DB) *ChoreRepository {
	return &ChoreRepository{db: db}
}

func (r *ChoreRepository) ListActive(ctx context.Context, householdID string) ([]chore.Chore, error) {
	query, args, err := qb.Select("*").
		From("chores").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list chores query: %w", err)
	}

	var rows []choreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}

	out := make([]chore.Chore, 0, len(rows))
	for _, row := range rows {
		out = append(out, choreToDomain(row))
	}
	return out, nil
}

func (r *ChoreRepository) GetByID(ctx context.Context, householdID, choreID string) (chore.Chore, bool, error) {
	query, args, err := qb.Select("*").
		From("chores").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", choreID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return chore.Chore{}, false, fmt.Errorf("build get chore query: %w", err)
	}

	var row choreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return chore.Chore{}, false, nil
		}
		return chore.Chore{}, false, fmt.Errorf("get chore: %w", err)
	}

	return choreToDomain(row), true, nil
}

func (r *ChoreRepository) Create(ctx context.Context, c chore.Chore) error {
	insertModel := choreInsertModel{
		PublicID:    c.ID,
		HouseholdID: c.HouseholdID,
		Name:        c.Name,
		Description: c.Description,
		Points:      c.Points,
		IsBonus:     c.IsBonus,
		IsActive:    c.IsActive,
	}
	query, args, err := qb.InsertModel("chores", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create chore query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create chore: %w", err)
	}
	return nil
}

func (r *ChoreRepository) Update(ctx context.Context, c chore.Chore) error {
	query, args, err := qb.Update("chores").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("points", c.Points).
		Set("is_bonus", c.IsBonus).
		Set("is_active", c.IsActive).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("household_public_id", c.HouseholdID),
			qb.Eq("public_id", c.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update chore query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update chore: %w", err)
	}
	return nil
}

func (r *ChoreRepository) Deactivate(ctx context.Context, householdID, choreID string) error {
	query, args, err := qb.Update("chores").
		Set("is_active", false).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", choreID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate chore query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate chore: %w", err)
	}
	return nil
}

func choreToDomain(row choreTableModel) chore.Chore {
	return chore.Chore{
		ID:          row.PublicID,
		HouseholdID: row.HouseholdID,
		Name:        row.Name,
		Description: row.Description,
		Points:      row.Points,
		IsBonus:     row.IsBonus,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
