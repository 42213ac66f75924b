package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/choreworld/choreworld/internal/domain/member"
	qb "github.com/choreworld/choreworld/internal/platform/querybuilder"
)

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) ListEligible(ctx context.Context, householdID string) ([]member.Member, error) {
	// insertion id order doubles as the rotation fallback order
	query, args, err := qb.Select("*").
		From("household_members").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("is_eligible", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list eligible members query: %w", err)
	}

	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list eligible members: %w", err)
	}

	out := make([]member.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberToDomain(row))
	}
	return out, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, householdID, memberID string) (member.Member, bool, error) {
	query, args, err := qb.Select("*").
		From("household_members").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", memberID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return member.Member{}, false, fmt.Errorf("build get member query: %w", err)
	}

	var row memberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return member.Member{}, false, nil
		}
		return member.Member{}, false, fmt.Errorf("get member: %w", err)
	}

	return memberToDomain(row), true, nil
}

func memberToDomain(row memberTableModel) member.Member {
	return member.Member{
		ID:          row.PublicID,
		HouseholdID: row.HouseholdID,
		DisplayName: row.DisplayName,
		IsEligible:  row.IsEligible,
		CreatedAt:   row.CreatedAt,
	}
}
