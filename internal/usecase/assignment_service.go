package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/choreworld/choreworld/internal/domain/assignment"
	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/domain/progression"
	"github.com/choreworld/choreworld/internal/domain/schedule"
	"github.com/choreworld/choreworld/internal/platform/id"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

// AssignmentService covers the lifecycle around daily records: completion,
// manual overrides and reporting.
type AssignmentService struct {
	memberRepo     member.Repository
	choreRepo      chore.Repository
	assignmentRepo assignment.Repository
	progressionSvc *ProgressionService
	idGen          id.Generator
	logger         *logging.Logger
	periodStartDay time.Weekday
	now            func() time.Time
}

func NewAssignmentService(
	memberRepo member.Repository,
	choreRepo chore.Repository,
	assignmentRepo assignment.Repository,
	progressionSvc *ProgressionService,
	idGen id.Generator,
	periodStartDay time.Weekday,
	logger *logging.Logger,
) *AssignmentService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if periodStartDay < time.Sunday || periodStartDay > time.Saturday {
		periodStartDay = schedule.DefaultPeriodStart
	}

	return &AssignmentService{
		memberRepo:     memberRepo,
		choreRepo:      choreRepo,
		assignmentRepo: assignmentRepo,
		progressionSvc: progressionSvc,
		idGen:          idGen,
		logger:         logger,
		periodStartDay: periodStartDay,
		now:            time.Now,
	}
}

type CompletionResult struct {
	Assignment assignment.Daily
	Award      progression.AwardResult
}

// Complete marks the assignment done and awards experience. Bonus chores pay
// double. Only the owner or a privileged caller may complete a record, and a
// record completes at most once.
func (s *AssignmentService) Complete(ctx context.Context, householdID, assignmentID string, actor member.Principal) (CompletionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.Complete")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	assignmentID = strings.TrimSpace(assignmentID)
	if householdID == "" {
		return CompletionResult{}, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if assignmentID == "" {
		return CompletionResult{}, fmt.Errorf("%w: assignment id is required", ErrInvalidInput)
	}

	record, exists, err := s.assignmentRepo.GetDailyAssignment(ctx, householdID, assignmentID)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("get daily assignment: %w", err)
	}
	if !exists {
		return CompletionResult{}, fmt.Errorf("%w: assignment=%s", ErrNotFound, assignmentID)
	}
	if record.Completed {
		return CompletionResult{}, fmt.Errorf("%w: assignment=%s is already completed", ErrInvalidInput, assignmentID)
	}
	if !actor.CanActFor(record.MemberID) {
		return CompletionResult{}, fmt.Errorf("%w: member=%s cannot complete assignment owned by member=%s", ErrUnauthorized, actor.MemberID, record.MemberID)
	}

	completedAt := s.now().UTC()
	if err := s.assignmentRepo.MarkDailyAssignmentCompleted(ctx, householdID, assignmentID, completedAt); err != nil {
		return CompletionResult{}, fmt.Errorf("mark assignment completed: %w", err)
	}

	xp := record.Points
	if record.IsBonus {
		xp *= 2
	}

	award, err := s.progressionSvc.AwardExperience(ctx, householdID, record.MemberID, xp)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("award experience: %w", err)
	}

	period, err := schedule.PeriodContaining(completedAt, s.periodStartDay)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	completionID, err := id.NewPrefixedID(s.idGen, "cmp")
	if err != nil {
		return CompletionResult{}, fmt.Errorf("generate completion id: %w", err)
	}
	completion := assignment.Completion{
		ID:          completionID,
		HouseholdID: householdID,
		MemberID:    record.MemberID,
		ChoreID:     record.ChoreID,
		Points:      record.Points,
		XPAwarded:   xp,
		PeriodStart: period.Start,
		CompletedAt: completedAt,
	}
	if err := s.assignmentRepo.RecordCompletion(ctx, completion); err != nil {
		return CompletionResult{}, fmt.Errorf("record completion: %w", err)
	}

	record.Completed = true
	record.CompletedAt = &completedAt

	s.logger.InfoContext(ctx, "assignment completed",
		"household_id", householdID,
		"assignment_id", assignmentID,
		"member_id", record.MemberID,
		"xp_awarded", xp,
		"leveled_up", award.LeveledUp,
	)

	return CompletionResult{Assignment: record, Award: award}, nil
}

func (s *AssignmentService) ListDaily(ctx context.Context, householdID string, date time.Time) ([]assignment.Daily, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.ListDaily")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if date.IsZero() {
		date = s.now()
	}

	items, err := s.assignmentRepo.ListDailyAssignments(ctx, householdID, schedule.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("list daily assignments: %w", err)
	}
	return items, nil
}

// AssignManual replaces a member's record for the date with one explicit
// chore. Privileged callers only.
func (s *AssignmentService) AssignManual(ctx context.Context, householdID, memberID, choreID string, date time.Time, actor member.Principal) (assignment.Daily, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.AssignManual")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	memberID = strings.TrimSpace(memberID)
	choreID = strings.TrimSpace(choreID)
	if householdID == "" || memberID == "" || choreID == "" {
		return assignment.Daily{}, fmt.Errorf("%w: household, member and chore ids are required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return assignment.Daily{}, fmt.Errorf("%w: manual assignment requires privilege", ErrUnauthorized)
	}
	if date.IsZero() {
		date = s.now()
	}
	date = schedule.DateOnly(date)

	m, exists, err := s.memberRepo.GetByID(ctx, householdID, memberID)
	if err != nil {
		return assignment.Daily{}, fmt.Errorf("get member: %w", err)
	}
	if !exists {
		return assignment.Daily{}, fmt.Errorf("%w: member=%s", ErrNotFound, memberID)
	}

	task, exists, err := s.choreRepo.GetByID(ctx, householdID, choreID)
	if err != nil {
		return assignment.Daily{}, fmt.Errorf("get chore: %w", err)
	}
	if !exists || !task.IsActive {
		return assignment.Daily{}, fmt.Errorf("%w: chore=%s", ErrNotFound, choreID)
	}

	if err := s.assignmentRepo.DeleteDailyAssignmentsForMember(ctx, householdID, memberID, date); err != nil {
		return assignment.Daily{}, fmt.Errorf("clear existing assignment: %w", err)
	}

	recordID, err := id.NewPrefixedID(s.idGen, "dca")
	if err != nil {
		return assignment.Daily{}, fmt.Errorf("generate daily assignment id: %w", err)
	}
	record := assignment.Daily{
		ID:          recordID,
		HouseholdID: householdID,
		MemberID:    m.ID,
		ChoreID:     task.ID,
		ChoreName:   task.Name,
		Points:      task.Points,
		IsBonus:     task.IsBonus,
		Date:        date,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.assignmentRepo.CreateDailyAssignment(ctx, record); err != nil {
		return assignment.Daily{}, fmt.Errorf("create daily assignment: %w", err)
	}

	s.logger.InfoContext(ctx, "manual assignment created",
		"household_id", householdID,
		"member_id", memberID,
		"chore_id", choreID,
		"date", schedule.DateKey(date),
		"actor_id", actor.MemberID,
	)
	return record, nil
}

// Delete removes a daily record. Privileged callers only; completion history
// already written for the record stays.
func (s *AssignmentService) Delete(ctx context.Context, householdID, assignmentID string, actor member.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.Delete")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	assignmentID = strings.TrimSpace(assignmentID)
	if householdID == "" || assignmentID == "" {
		return fmt.Errorf("%w: household id and assignment id are required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return fmt.Errorf("%w: deleting assignments requires privilege", ErrUnauthorized)
	}

	_, exists, err := s.assignmentRepo.GetDailyAssignment(ctx, householdID, assignmentID)
	if err != nil {
		return fmt.Errorf("get daily assignment: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: assignment=%s", ErrNotFound, assignmentID)
	}

	if err := s.assignmentRepo.DeleteDailyAssignment(ctx, householdID, assignmentID); err != nil {
		return fmt.Errorf("delete daily assignment: %w", err)
	}
	return nil
}

type WeeklySummary struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Members     []MemberWeeklySummary
}

type MemberWeeklySummary struct {
	MemberID       string
	DisplayName    string
	CompletedCount int
	PointsEarned   int
	XPEarned       int
}

// Summary aggregates the current period's completions per eligible member.
func (s *AssignmentService) Summary(ctx context.Context, householdID string, ref time.Time) (WeeklySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.Summary")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return WeeklySummary{}, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if ref.IsZero() {
		ref = s.now()
	}

	period, err := schedule.PeriodContaining(ref, s.periodStartDay)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	members, err := s.memberRepo.ListEligible(ctx, householdID)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("list eligible members: %w", err)
	}

	completions, err := s.assignmentRepo.ListCompletionsInRange(ctx, householdID, period.Start, period.End)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("list completions: %w", err)
	}

	byMember := make(map[string]*MemberWeeklySummary, len(members))
	summary := WeeklySummary{
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		Members:     make([]MemberWeeklySummary, len(members)),
	}
	for i, m := range members {
		summary.Members[i] = MemberWeeklySummary{
			MemberID:    m.ID,
			DisplayName: m.DisplayName,
		}
		byMember[m.ID] = &summary.Members[i]
	}
	for _, c := range completions {
		row, ok := byMember[c.MemberID]
		if !ok {
			continue
		}
		row.CompletedCount++
		row.PointsEarned += c.Points
		row.XPEarned += c.XPAwarded
	}

	return summary, nil
}

func (s *AssignmentService) ListWeeks(ctx context.Context, householdID string) ([]time.Time, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.ListWeeks")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}

	starts, err := s.assignmentRepo.ListWeeklyPeriodStarts(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list weekly period starts: %w", err)
	}
	return starts, nil
}

// DutyRoster lists who currently holds each rotating duty.
func (s *AssignmentService) DutyRoster(ctx context.Context, householdID string) ([]assignment.Weekly, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.DutyRoster")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}

	items, err := s.assignmentRepo.ListActiveWeeklyAssignments(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list active weekly assignments: %w", err)
	}
	return items, nil
}
