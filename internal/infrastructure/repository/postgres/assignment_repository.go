package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/choreworld/choreworld/internal/domain/assignment"
	qb "github.com/choreworld/choreworld/internal/platform/querybuilder"
)

type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) HasDailyAssignments(ctx context.Context, householdID string, date time.Time) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").
		From("daily_assignments").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("assigned_date", timeToUnix(date)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build has daily assignments query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("has daily assignments: %w", err)
	}
	return count > 0, nil
}

func (r *AssignmentRepository) CreateDailyAssignment(ctx context.Context, d assignment.Daily) error {
	insertModel := dailyAssignmentInsertModel{
		PublicID:     d.ID,
		HouseholdID:  d.HouseholdID,
		MemberID:     d.MemberID,
		ChoreID:      d.ChoreID,
		ChoreName:    d.ChoreName,
		Points:       d.Points,
		IsBonus:      d.IsBonus,
		AssignedDate: timeToUnix(d.Date),
		Completed:    d.Completed,
		CompletedAt:  nullableUnix(d.CompletedAt),
	}
	query, args, err := qb.InsertModel("daily_assignments", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create daily assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create daily assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) GetDailyAssignment(ctx context.Context, householdID, assignmentID string) (assignment.Daily, bool, error) {
	query, args, err := qb.Select("*").
		From("daily_assignments").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", assignmentID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return assignment.Daily{}, false, fmt.Errorf("build get daily assignment query: %w", err)
	}

	var row dailyAssignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return assignment.Daily{}, false, nil
		}
		return assignment.Daily{}, false, fmt.Errorf("get daily assignment: %w", err)
	}

	return dailyAssignmentToDomain(row), true, nil
}

func (r *AssignmentRepository) ListDailyAssignments(ctx context.Context, householdID string, date time.Time) ([]assignment.Daily, error) {
	query, args, err := qb.Select("*").
		From("daily_assignments").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("assigned_date", timeToUnix(date)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list daily assignments query: %w", err)
	}

	var rows []dailyAssignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily assignments: %w", err)
	}

	out := make([]assignment.Daily, 0, len(rows))
	for _, row := range rows {
		out = append(out, dailyAssignmentToDomain(row))
	}
	return out, nil
}

func (r *AssignmentRepository) MarkDailyAssignmentCompleted(ctx context.Context, householdID, assignmentID string, completedAt time.Time) error {
	query, args, err := qb.Update("daily_assignments").
		Set("completed", true).
		Set("completed_at", timeToUnix(completedAt)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", assignmentID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark daily assignment completed query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark daily assignment completed: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) DeleteDailyAssignment(ctx context.Context, householdID, assignmentID string) error {
	query, args, err := qb.Update("daily_assignments").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("public_id", assignmentID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete daily assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete daily assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) DeleteDailyAssignmentsForMember(ctx context.Context, householdID, memberID string, date time.Time) error {
	query, args, err := qb.Update("daily_assignments").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("member_public_id", memberID),
			qb.Eq("assigned_date", timeToUnix(date)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete member daily assignments query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete member daily assignments: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) FindLastWeeklyAssignment(ctx context.Context, householdID, dutyTypeID string) (assignment.Weekly, bool, error) {
	query, args, err := qb.Select("*").
		From("weekly_assignments").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("duty_type_public_id", dutyTypeID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("period_start DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return assignment.Weekly{}, false, fmt.Errorf("build find last weekly assignment query: %w", err)
	}

	var row weeklyAssignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return assignment.Weekly{}, false, nil
		}
		return assignment.Weekly{}, false, fmt.Errorf("find last weekly assignment: %w", err)
	}

	return weeklyAssignmentToDomain(row), true, nil
}

func (r *AssignmentRepository) HasWeeklyAssignment(ctx context.Context, householdID, dutyTypeID string, periodStart time.Time) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").
		From("weekly_assignments").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("duty_type_public_id", dutyTypeID),
			qb.Eq("period_start", timeToUnix(periodStart)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build has weekly assignment query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("has weekly assignment: %w", err)
	}
	return count > 0, nil
}

func (r *AssignmentRepository) ListActiveWeeklyAssignments(ctx context.Context, householdID string) ([]assignment.Weekly, error) {
	query, args, err := qb.Select("*").
		From("weekly_assignments").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active weekly assignments query: %w", err)
	}

	var rows []weeklyAssignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active weekly assignments: %w", err)
	}

	out := make([]assignment.Weekly, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyAssignmentToDomain(row))
	}
	return out, nil
}

func (r *AssignmentRepository) DeactivateWeeklyAssignments(ctx context.Context, householdID, dutyTypeID string) error {
	query, args, err := qb.Update("weekly_assignments").
		Set("is_active", false).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Eq("duty_type_public_id", dutyTypeID),
			qb.Eq("is_active", true),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate weekly assignments query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate weekly assignments: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) CreateWeeklyAssignment(ctx context.Context, w assignment.Weekly) error {
	insertModel := weeklyAssignmentInsertModel{
		PublicID:    w.ID,
		HouseholdID: w.HouseholdID,
		DutyTypeID:  w.DutyTypeID,
		MemberID:    w.MemberID,
		PeriodStart: timeToUnix(w.PeriodStart),
		PeriodEnd:   timeToUnix(w.PeriodEnd),
		IsActive:    w.IsActive,
	}
	query, args, err := qb.InsertModel("weekly_assignments", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create weekly assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create weekly assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) ListWeeklyPeriodStarts(ctx context.Context, householdID string) ([]time.Time, error) {
	query, args, err := qb.Select("period_start").
		From("weekly_assignments").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.IsNull("deleted_at"),
		).
		GroupBy("period_start").
		OrderBy("period_start DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly period starts query: %w", err)
	}

	var rows []int64
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly period starts: %w", err)
	}

	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, unixToTime(row))
	}
	return out, nil
}

func (r *AssignmentRepository) RecordCompletion(ctx context.Context, c assignment.Completion) error {
	insertModel := completionInsertModel{
		PublicID:    c.ID,
		HouseholdID: c.HouseholdID,
		MemberID:    c.MemberID,
		ChoreID:     c.ChoreID,
		Points:      c.Points,
		XPAwarded:   c.XPAwarded,
		PeriodStart: timeToUnix(c.PeriodStart),
		CompletedAt: timeToUnix(c.CompletedAt),
	}
	query, args, err := qb.InsertModel("chore_completions", insertModel, "")
	if err != nil {
		return fmt.Errorf("build record completion query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) ListCompletionsInRange(ctx context.Context, householdID string, from, to time.Time) ([]assignment.Completion, error) {
	query, args, err := qb.Select("*").
		From("chore_completions").
		Where(
			qb.Eq("household_public_id", householdID),
			qb.Gte("completed_at", timeToUnix(from)),
			qb.Lte("completed_at", timeToUnix(to)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("completed_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list completions query: %w", err)
	}

	var rows []completionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	out := make([]assignment.Completion, 0, len(rows))
	for _, row := range rows {
		out = append(out, assignment.Completion{
			ID:          row.PublicID,
			HouseholdID: row.HouseholdID,
			MemberID:    row.MemberID,
			ChoreID:     row.ChoreID,
			Points:      row.Points,
			XPAwarded:   row.XPAwarded,
			PeriodStart: unixToTime(row.PeriodStart),
			CompletedAt: unixToTime(row.CompletedAt),
		})
	}
	return out, nil
}

func dailyAssignmentToDomain(row dailyAssignmentTableModel) assignment.Daily {
	return assignment.Daily{
		ID:          row.PublicID,
		HouseholdID: row.HouseholdID,
		MemberID:    row.MemberID,
		ChoreID:     row.ChoreID,
		ChoreName:   row.ChoreName,
		Points:      row.Points,
		IsBonus:     row.IsBonus,
		Date:        unixToTime(row.AssignedDate),
		Completed:   row.Completed,
		CompletedAt: nullUnixToTimePtr(row.CompletedAt),
		CreatedAt:   row.CreatedAt,
	}
}

func weeklyAssignmentToDomain(row weeklyAssignmentTableModel) assignment.Weekly {
	return assignment.Weekly{
		ID:          row.PublicID,
		HouseholdID: row.HouseholdID,
		DutyTypeID:  row.DutyTypeID,
		MemberID:    row.MemberID,
		PeriodStart: unixToTime(row.PeriodStart),
		PeriodEnd:   unixToTime(row.PeriodEnd),
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
}
