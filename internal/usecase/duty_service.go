package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/choreworld/choreworld/internal/domain/assignment"
	"github.com/choreworld/choreworld/internal/domain/duty"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/platform/id"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

// DutyService manages duty types and their rotation orders.
type DutyService struct {
	dutyRepo       duty.Repository
	memberRepo     member.Repository
	assignmentRepo assignment.Repository
	idGen          id.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewDutyService(
	dutyRepo duty.Repository,
	memberRepo member.Repository,
	assignmentRepo assignment.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *DutyService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DutyService{
		dutyRepo:       dutyRepo,
		memberRepo:     memberRepo,
		assignmentRepo: assignmentRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

type DutyTypeInput struct {
	Name        string
	Icon        string
	Description string
}

func (s *DutyService) List(ctx context.Context, householdID string) ([]duty.Type, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DutyService.List")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}

	items, err := s.dutyRepo.ListActive(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list duty types: %w", err)
	}
	return items, nil
}

func (s *DutyService) Create(ctx context.Context, householdID string, input DutyTypeInput, actor member.Principal) (duty.Type, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DutyService.Create")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return duty.Type{}, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return duty.Type{}, fmt.Errorf("%w: managing duty types requires privilege", ErrUnauthorized)
	}

	dutyTypeID, err := id.NewPrefixedID(s.idGen, "dty")
	if err != nil {
		return duty.Type{}, fmt.Errorf("generate duty type id: %w", err)
	}

	now := s.now().UTC()
	t := duty.Type{
		ID:          dutyTypeID,
		HouseholdID: householdID,
		Name:        strings.TrimSpace(input.Name),
		Icon:        strings.TrimSpace(input.Icon),
		Description: strings.TrimSpace(input.Description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return duty.Type{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.dutyRepo.Create(ctx, t); err != nil {
		return duty.Type{}, fmt.Errorf("create duty type: %w", err)
	}

	s.logger.InfoContext(ctx, "duty type created",
		"household_id", householdID,
		"duty_type_id", t.ID,
		"name", t.Name,
	)
	return t, nil
}

func (s *DutyService) Update(ctx context.Context, householdID, dutyTypeID string, input DutyTypeInput, actor member.Principal) (duty.Type, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DutyService.Update")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	dutyTypeID = strings.TrimSpace(dutyTypeID)
	if householdID == "" || dutyTypeID == "" {
		return duty.Type{}, fmt.Errorf("%w: household id and duty type id are required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return duty.Type{}, fmt.Errorf("%w: managing duty types requires privilege", ErrUnauthorized)
	}

	existing, exists, err := s.dutyRepo.GetByID(ctx, householdID, dutyTypeID)
	if err != nil {
		return duty.Type{}, fmt.Errorf("get duty type: %w", err)
	}
	if !exists {
		return duty.Type{}, fmt.Errorf("%w: duty_type=%s", ErrNotFound, dutyTypeID)
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Icon = strings.TrimSpace(input.Icon)
	existing.Description = strings.TrimSpace(input.Description)
	existing.UpdatedAt = s.now().UTC()
	if err := existing.Validate(); err != nil {
		return duty.Type{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.dutyRepo.Update(ctx, existing); err != nil {
		return duty.Type{}, fmt.Errorf("update duty type: %w", err)
	}
	return existing, nil
}

// Delete deactivates a duty type. Rejected while a member actively holds the
// duty, so a rotation cannot point at a vanished type.
func (s *DutyService) Delete(ctx context.Context, householdID, dutyTypeID string, actor member.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DutyService.Delete")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	dutyTypeID = strings.TrimSpace(dutyTypeID)
	if householdID == "" || dutyTypeID == "" {
		return fmt.Errorf("%w: household id and duty type id are required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return fmt.Errorf("%w: managing duty types requires privilege", ErrUnauthorized)
	}

	_, exists, err := s.dutyRepo.GetByID(ctx, householdID, dutyTypeID)
	if err != nil {
		return fmt.Errorf("get duty type: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: duty_type=%s", ErrNotFound, dutyTypeID)
	}

	active, err := s.assignmentRepo.ListActiveWeeklyAssignments(ctx, householdID)
	if err != nil {
		return fmt.Errorf("list active weekly assignments: %w", err)
	}
	for _, w := range active {
		if w.DutyTypeID == dutyTypeID {
			return fmt.Errorf("%w: duty_type=%s has an active weekly assignment", ErrInvalidInput, dutyTypeID)
		}
	}

	if err := s.dutyRepo.Deactivate(ctx, householdID, dutyTypeID); err != nil {
		return fmt.Errorf("deactivate duty type: %w", err)
	}
	return nil
}

func (s *DutyService) GetRotationOrder(ctx context.Context, householdID, dutyTypeID string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DutyService.GetRotationOrder")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	dutyTypeID = strings.TrimSpace(dutyTypeID)
	if householdID == "" || dutyTypeID == "" {
		return nil, fmt.Errorf("%w: household id and duty type id are required", ErrInvalidInput)
	}

	_, exists, err := s.dutyRepo.GetByID(ctx, householdID, dutyTypeID)
	if err != nil {
		return nil, fmt.Errorf("get duty type: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: duty_type=%s", ErrNotFound, dutyTypeID)
	}

	order, err := s.dutyRepo.GetRotationOrder(ctx, householdID, dutyTypeID)
	if err != nil {
		return nil, fmt.Errorf("get rotation order: %w", err)
	}
	return order, nil
}

// SetRotationOrder replaces the configured order. Every id must name a
// distinct eligible member of the household.
func (s *DutyService) SetRotationOrder(ctx context.Context, householdID, dutyTypeID string, memberIDs []string, actor member.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DutyService.SetRotationOrder")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	dutyTypeID = strings.TrimSpace(dutyTypeID)
	if householdID == "" || dutyTypeID == "" {
		return fmt.Errorf("%w: household id and duty type id are required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return fmt.Errorf("%w: configuring rotation order requires privilege", ErrUnauthorized)
	}

	_, exists, err := s.dutyRepo.GetByID(ctx, householdID, dutyTypeID)
	if err != nil {
		return fmt.Errorf("get duty type: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: duty_type=%s", ErrNotFound, dutyTypeID)
	}

	members, err := s.memberRepo.ListEligible(ctx, householdID)
	if err != nil {
		return fmt.Errorf("list eligible members: %w", err)
	}
	eligible := make(map[string]bool, len(members))
	for _, m := range members {
		eligible[m.ID] = true
	}

	cleaned := make([]string, 0, len(memberIDs))
	seen := make(map[string]bool, len(memberIDs))
	for _, raw := range memberIDs {
		memberID := strings.TrimSpace(raw)
		if memberID == "" {
			return fmt.Errorf("%w: rotation order contains an empty member id", ErrInvalidInput)
		}
		if seen[memberID] {
			return fmt.Errorf("%w: rotation order repeats member=%s", ErrInvalidInput, memberID)
		}
		if !eligible[memberID] {
			return fmt.Errorf("%w: member=%s is not an eligible member of household=%s", ErrInvalidInput, memberID, householdID)
		}
		seen[memberID] = true
		cleaned = append(cleaned, memberID)
	}

	if err := s.dutyRepo.SetRotationOrder(ctx, householdID, dutyTypeID, cleaned); err != nil {
		return fmt.Errorf("set rotation order: %w", err)
	}

	s.logger.InfoContext(ctx, "rotation order updated",
		"household_id", householdID,
		"duty_type_id", dutyTypeID,
		"member_count", len(cleaned),
		"actor_id", actor.MemberID,
	)
	return nil
}
