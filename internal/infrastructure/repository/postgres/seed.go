package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/choreworld/choreworld/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo household on an empty database so a fresh
// deployment is usable immediately.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM households WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count households for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, h := range memory.SeedHouseholds() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO households (public_id, name, is_active)
VALUES (:public_id, :name, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": h.ID,
			"name":      h.Name,
			"is_active": h.IsActive,
		})
		if err != nil {
			return fmt.Errorf("bind seed household %s query: %w", h.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed household %s: %w", h.ID, err)
		}
	}

	for _, m := range memory.SeedMembers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO household_members (public_id, household_public_id, display_name, is_eligible)
VALUES (:public_id, :household_public_id, :display_name, :is_eligible)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           m.ID,
			"household_public_id": m.HouseholdID,
			"display_name":        m.DisplayName,
			"is_eligible":         m.IsEligible,
		})
		if err != nil {
			return fmt.Errorf("bind seed member %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed member %s: %w", m.ID, err)
		}
	}

	for _, c := range memory.SeedChores() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO chores (public_id, household_public_id, name, description, points, is_bonus, is_active)
VALUES (:public_id, :household_public_id, :name, :description, :points, :is_bonus, TRUE)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           c.ID,
			"household_public_id": c.HouseholdID,
			"name":                c.Name,
			"description":         c.Description,
			"points":              c.Points,
			"is_bonus":            c.IsBonus,
		})
		if err != nil {
			return fmt.Errorf("bind seed chore %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed chore %s: %w", c.ID, err)
		}
	}

	for _, d := range memory.SeedDutyTypes() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO duty_types (public_id, household_public_id, name, icon, description, is_active)
VALUES (:public_id, :household_public_id, :name, :icon, :description, TRUE)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           d.ID,
			"household_public_id": d.HouseholdID,
			"name":                d.Name,
			"icon":                d.Icon,
			"description":         d.Description,
		})
		if err != nil {
			return fmt.Errorf("bind seed duty type %s query: %w", d.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed duty type %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
