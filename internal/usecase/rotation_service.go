package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/choreworld/choreworld/internal/domain/assignment"
	"github.com/choreworld/choreworld/internal/domain/duty"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/domain/schedule"
	"github.com/choreworld/choreworld/internal/platform/id"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

// RotationService advances cyclic weekly duties to the next member.
type RotationService struct {
	memberRepo     member.Repository
	dutyRepo       duty.Repository
	assignmentRepo assignment.Repository
	idGen          id.Generator
	logger         *logging.Logger
	periodStartDay time.Weekday
	now            func() time.Time
}

func NewRotationService(
	memberRepo member.Repository,
	dutyRepo duty.Repository,
	assignmentRepo assignment.Repository,
	idGen id.Generator,
	periodStartDay time.Weekday,
	logger *logging.Logger,
) *RotationService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if periodStartDay < time.Sunday || periodStartDay > time.Saturday {
		periodStartDay = schedule.DefaultPeriodStart
	}

	return &RotationService{
		memberRepo:     memberRepo,
		dutyRepo:       dutyRepo,
		assignmentRepo: assignmentRepo,
		idGen:          idGen,
		logger:         logger,
		periodStartDay: periodStartDay,
		now:            time.Now,
	}
}

// RotateWeekly hands the duty to the next candidate for the period containing
// ref. Candidates are the configured rotation order filtered to eligible
// members, then any eligible member missing from the order in creation order.
// When the last assignee is gone from the list the rotation restarts at the
// first candidate.
func (s *RotationService) RotateWeekly(ctx context.Context, householdID, dutyTypeID string, ref time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RotationService.RotateWeekly")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	dutyTypeID = strings.TrimSpace(dutyTypeID)
	if householdID == "" {
		return fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if dutyTypeID == "" {
		return fmt.Errorf("%w: duty type id is required", ErrInvalidInput)
	}

	dutyType, exists, err := s.dutyRepo.GetByID(ctx, householdID, dutyTypeID)
	if err != nil {
		return fmt.Errorf("get duty type: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: duty_type=%s", ErrNotFound, dutyTypeID)
	}

	period, err := schedule.PeriodContaining(ref, s.periodStartDay)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	done, err := s.assignmentRepo.HasWeeklyAssignment(ctx, householdID, dutyTypeID, period.Start)
	if err != nil {
		return fmt.Errorf("check weekly assignment: %w", err)
	}
	if done {
		s.logger.DebugContext(ctx, "weekly rotation already done",
			"household_id", householdID,
			"duty_type_id", dutyTypeID,
			"period_start", schedule.DateKey(period.Start),
		)
		return nil
	}

	candidates, err := s.buildCandidates(ctx, householdID, dutyTypeID)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		s.logger.InfoContext(ctx, "weekly rotation skipped, no candidates",
			"household_id", householdID,
			"duty_type_id", dutyTypeID,
		)
		return nil
	}

	next := candidates[0]
	last, hasLast, err := s.assignmentRepo.FindLastWeeklyAssignment(ctx, householdID, dutyTypeID)
	if err != nil {
		return fmt.Errorf("find last weekly assignment: %w", err)
	}
	if hasLast {
		for i, candidate := range candidates {
			if candidate == last.MemberID {
				next = candidates[(i+1)%len(candidates)]
				break
			}
		}
	}

	if err := s.assignmentRepo.DeactivateWeeklyAssignments(ctx, householdID, dutyTypeID); err != nil {
		return fmt.Errorf("deactivate weekly assignments: %w", err)
	}

	recordID, err := id.NewPrefixedID(s.idGen, "wda")
	if err != nil {
		return fmt.Errorf("generate weekly assignment id: %w", err)
	}
	record := assignment.Weekly{
		ID:          recordID,
		HouseholdID: householdID,
		DutyTypeID:  dutyTypeID,
		MemberID:    next,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		IsActive:    true,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.assignmentRepo.CreateWeeklyAssignment(ctx, record); err != nil {
		return fmt.Errorf("create weekly assignment: %w", err)
	}

	s.logger.InfoContext(ctx, "weekly duty rotated",
		"household_id", householdID,
		"duty_type_id", dutyTypeID,
		"duty_name", dutyType.Name,
		"member_id", next,
		"period_start", schedule.DateKey(period.Start),
	)
	return nil
}

// RotateAll rotates every active duty type of the household for the period
// containing ref. Duty types rotate independently, so they run concurrently;
// the first error wins but does not cancel sibling rotations.
func (s *RotationService) RotateAll(ctx context.Context, householdID string, ref time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RotationService.RotateAll")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}

	dutyTypes, err := s.dutyRepo.ListActive(ctx, householdID)
	if err != nil {
		return fmt.Errorf("list active duty types: %w", err)
	}
	if len(dutyTypes) == 0 {
		s.logger.InfoContext(ctx, "weekly rotation skipped, no active duty types",
			"household_id", householdID,
		)
		return nil
	}

	var wg conc.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for _, dutyType := range dutyTypes {
		dutyType := dutyType
		wg.Go(func() {
			if err := s.RotateWeekly(ctx, householdID, dutyType.ID, ref); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("rotate duty_type=%s: %w", dutyType.ID, err)
				}
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	return firstErr
}

func (s *RotationService) buildCandidates(ctx context.Context, householdID, dutyTypeID string) ([]string, error) {
	order, err := s.dutyRepo.GetRotationOrder(ctx, householdID, dutyTypeID)
	if err != nil {
		return nil, fmt.Errorf("get rotation order: %w", err)
	}

	members, err := s.memberRepo.ListEligible(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list eligible members: %w", err)
	}

	eligible := make(map[string]bool, len(members))
	for _, m := range members {
		eligible[m.ID] = true
	}

	candidates := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, memberID := range order {
		if !eligible[memberID] || seen[memberID] {
			continue
		}
		candidates = append(candidates, memberID)
		seen[memberID] = true
	}
	// partial orders still reach everyone: missing eligible members join at
	// the tail in creation order
	for _, m := range members {
		if seen[m.ID] {
			continue
		}
		candidates = append(candidates, m.ID)
		seen[m.ID] = true
	}

	return candidates, nil
}
