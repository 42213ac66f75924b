package assignment

import (
	"context"
	"time"
)

// Repository describes assignment persistence needs from use cases. Every
// operation is household scoped. A unique index on (household, member, date)
// and one on (household, duty type, period start) back the existence checks
// against concurrent scheduler triggers.
type Repository interface {
	HasDailyAssignments(ctx context.Context, householdID string, date time.Time) (bool, error)
	CreateDailyAssignment(ctx context.Context, d Daily) error
	GetDailyAssignment(ctx context.Context, householdID, assignmentID string) (Daily, bool, error)
	ListDailyAssignments(ctx context.Context, householdID string, date time.Time) ([]Daily, error)
	MarkDailyAssignmentCompleted(ctx context.Context, householdID, assignmentID string, completedAt time.Time) error
	DeleteDailyAssignment(ctx context.Context, householdID, assignmentID string) error
	DeleteDailyAssignmentsForMember(ctx context.Context, householdID, memberID string, date time.Time) error

	FindLastWeeklyAssignment(ctx context.Context, householdID, dutyTypeID string) (Weekly, bool, error)
	HasWeeklyAssignment(ctx context.Context, householdID, dutyTypeID string, periodStart time.Time) (bool, error)
	ListActiveWeeklyAssignments(ctx context.Context, householdID string) ([]Weekly, error)
	DeactivateWeeklyAssignments(ctx context.Context, householdID, dutyTypeID string) error
	CreateWeeklyAssignment(ctx context.Context, w Weekly) error
	ListWeeklyPeriodStarts(ctx context.Context, householdID string) ([]time.Time, error)

	RecordCompletion(ctx context.Context, c Completion) error
	ListCompletionsInRange(ctx context.Context, householdID string, from, to time.Time) ([]Completion, error)
}
