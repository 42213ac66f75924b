package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/choreworld/choreworld/internal/domain/progression"
	qb "github.com/choreworld/choreworld/internal/platform/querybuilder"
)

type ProgressionRepository struct {
	db *sqlx.DB
}

func NewProgressionRepository(db *sqlx.DB) *ProgressionRepository {
	return &ProgressionRepository{db: db}
}

func (r *ProgressionRepository) Get(ctx context.Context, householdID, memberID string) (progression.Progression, error) {
	query, args, err := qb.Select("*").
		From("member_progressions").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("member_public_id", memberID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return progression.Progression{}, fmt.Errorf("build get progression query: %w", err)
	}

	var row progressionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return progression.NewDefault(householdID, memberID), nil
		}
		return progression.Progression{}, fmt.Errorf("get progression: %w", err)
	}

	return progression.Progression{
		MemberID:    row.MemberID,
		HouseholdID: row.HouseholdID,
		Level:       row.Level,
		TotalXP:     row.TotalXP,
	}, nil
}

func (r *ProgressionRepository) Set(ctx context.Context, p progression.Progression) error {
	insertModel := progressionInsertModel{
		HouseholdID: p.HouseholdID,
		MemberID:    p.MemberID,
		Level:       p.Level,
		TotalXP:     p.TotalXP,
	}
	query, args, err := qb.InsertModel("member_progressions", insertModel, `ON CONFLICT (household_public_id, member_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    level = EXCLUDED.level,
    total_xp = EXCLUDED.total_xp,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build set progression query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set progression: %w", err)
	}
	return nil
}

// AddXP serializes concurrent awards on the member's row with
// SELECT ... FOR UPDATE inside one transaction.
func (r *ProgressionRepository) AddXP(ctx context.Context, householdID, memberID string, amount int) (progression.Progression, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return progression.Progression{}, fmt.Errorf("begin add xp tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx, `
INSERT INTO member_progressions (household_public_id, member_public_id, level, total_xp)
VALUES (:household_public_id, :member_public_id, 1, 0)
ON CONFLICT (household_public_id, member_public_id) WHERE deleted_at IS NULL
DO NOTHING`, map[string]any{
		"household_public_id": householdID,
		"member_public_id":    memberID,
	})
	if err != nil {
		return progression.Progression{}, fmt.Errorf("ensure progression row: %w", err)
	}

	var row progressionTableModel
	err = tx.GetContext(ctx, &row, `
SELECT *
FROM member_progressions
WHERE household_public_id = $1
  AND member_public_id = $2
  AND deleted_at IS NULL
FOR UPDATE`, householdID, memberID)
	if err != nil {
		return progression.Progression{}, fmt.Errorf("lock progression row: %w", err)
	}

	newTotal := row.TotalXP + amount
	newLevel := progression.LevelFromTotalXP(newTotal)

	_, err = tx.ExecContext(ctx, `
UPDATE member_progressions
SET total_xp = $1, level = $2, updated_at = NOW()
WHERE id = $3`, newTotal, newLevel, row.ID)
	if err != nil {
		return progression.Progression{}, fmt.Errorf("update progression: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return progression.Progression{}, fmt.Errorf("commit add xp tx: %w", err)
	}

	return progression.Progression{
		MemberID:    memberID,
		HouseholdID: householdID,
		Level:       newLevel,
		TotalXP:     newTotal,
	}, nil
}

func (r *ProgressionRepository) ListByHousehold(ctx context.Context, householdID string) ([]progression.Progression, error) {
	query, args, err := qb.Select("*").
		From("member_progressions").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list progressions query: %w", err)
	}

	var rows []progressionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list progressions: %w", err)
	}

	out := make([]progression.Progression, 0, len(rows))
	for _, row := range rows {
		out = append(out, progression.Progression{
			MemberID:    row.MemberID,
			HouseholdID: row.HouseholdID,
			Level:       row.Level,
			TotalXP:     row.TotalXP,
		})
	}
	return out, nil
}
