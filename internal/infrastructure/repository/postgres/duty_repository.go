package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/choreworld/choreworld/internal/domain/duty"
	qb "github.com/choreworld/choreworld/internal/platform/querybuilder"
)

type DutyRepository struct {
	db *sqlx.DB
}

func NewDutyRepository(db *sqlx.DB) *DutyRepository {
	return &DutyRepository{db: db}
}

func (r *DutyRepository) ListActive(ctx context.Context, householdID string) ([]duty.Type, error) {
	query, args, err := qb.Select("*").
		From("duty_types").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list duty types query: %w", err)
	}

	var rows []dutyTypeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list duty types: %w", err)
	}

	out := make([]duty.Type, 0, len(rows))
	for _, row := range rows {
		out = append(out, dutyTypeToDomain(row))
	}
	return out, nil
}

func (r *DutyRepository) GetByID(ctx context.Context, householdID, dutyTypeID string) (duty.Type, bool, error) {
	query, args, err := qb.Select("*").
		From("duty_types").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", dutyTypeID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return duty.Type{}, false, fmt.Errorf("build get duty type query: %w", err)
	}

	var row dutyTypeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return duty.Type{}, false, nil
		}
		return duty.Type{}, false, fmt.Errorf("get duty type: %w", err)
	}

	return dutyTypeToDomain(row), true, nil
}

func (r *DutyRepository) Create(ctx context.Context, t duty.Type) error {
	insertModel := dutyTypeInsertModel{
		PublicID:    t.ID,
		HouseholdID: t.HouseholdID,
		Name:        t.Name,
		Icon:        t.Icon,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
	query, args, err := qb.InsertModel("duty_types", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create duty type query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create duty type: %w", err)
	}
	return nil
}

func (r *DutyRepository) Update(ctx context.Context, t duty.Type) error {
	query, args, err := qb.Update("duty_types").
		Set("name", t.Name).
		Set("icon", t.Icon).
		Set("description", t.Description).
		Set("is_active", t.IsActive).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("household_public_id", t.HouseholdID),
			qb.Eq("public_id", t.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update duty type query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update duty type: %w", err)
	}
	return nil
}

func (r *DutyRepository) Deactivate(ctx context.Context, householdID, dutyTypeID string) error {
	query, args, err := qb.Update("duty_types").
		Set("is_active", false).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", dutyTypeID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate duty type query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate duty type: %w", err)
	}
	return nil
}

func (r *DutyRepository) GetRotationOrder(ctx context.Context, householdID, dutyTypeID string) ([]string, error) {
	query, args, err := qb.Select("*").
		From("duty_rotation_orders").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("duty_type_public_id", dutyTypeID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get rotation order query: %w", err)
	}

	var row rotationOrderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rotation order: %w", err)
	}

	return append([]string(nil), row.MemberIDs...), nil
}

func (r *DutyRepository) SetRotationOrder(ctx context.Context, householdID, dutyTypeID string, memberIDs []string) error {
	insertModel := rotationOrderInsertModel{
		HouseholdID: householdID,
		DutyTypeID:  dutyTypeID,
		MemberIDs:   pq.StringArray(memberIDs),
	}
	query, args, err := qb.InsertModel("duty_rotation_orders", insertModel, `ON CONFLICT (household_public_id, duty_type_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    member_public_ids = EXCLUDED.member_public_ids,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build set rotation order query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set rotation order: %w", err)
	}
	return nil
}

func dutyTypeToDomain(row dutyTypeTableModel) duty.Type {
	return duty.Type{
		ID:          row.PublicID,
		HouseholdID: row.HouseholdID,
		Name:        row.Name,
		Icon:        row.Icon,
		Description: row.Description,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
