package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/platform/id"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

// ChoreService manages the chore catalog. Mutations are privileged.
type ChoreService struct {
	choreRepo chore.Repository
	idGen     id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewChoreService(choreRepo chore.Repository, idGen id.Generator, logger *logging.Logger) *ChoreService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ChoreService{
		choreRepo: choreRepo,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

type ChoreInput struct {
	Name        string
	Description string
	Points      int
	IsBonus     bool
}

func (s *ChoreService) List(ctx context.Context, householdID string) ([]chore.Chore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChoreService.List")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}

	items, err := s.choreRepo.ListActive(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	return items, nil
}

func (s *ChoreService) Create(ctx context.Context, householdID string, input ChoreInput, actor member.Principal) (chore.Chore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChoreService.Create")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return chore.Chore{}, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return chore.Chore{}, fmt.Errorf("%w: managing chores requires privilege", ErrUnauthorized)
	}

	choreID, err := id.NewPrefixedID(s.idGen, "chr")
	if err != nil {
		return chore.Chore{}, fmt.Errorf("generate chore id: %w", err)
	}

	now := s.now().UTC()
	c := chore.Chore{
		ID:          choreID,
		HouseholdID: householdID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Points:      input.Points,
		IsBonus:     input.IsBonus,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return chore.Chore{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.choreRepo.Create(ctx, c); err != nil {
		return chore.Chore{}, fmt.Errorf("create chore: %w", err)
	}

	s.logger.InfoContext(ctx, "chore created",
		"household_id", householdID,
		"chore_id", c.ID,
		"points", c.Points,
		"is_bonus", c.IsBonus,
	)
	return c, nil
}

func (s *ChoreService) Update(ctx context.Context, householdID, choreID string, input ChoreInput, actor member.Principal) (chore.Chore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChoreService.Update")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	choreID = strings.TrimSpace(choreID)
	if householdID == "" || choreID == "" {
		return chore.Chore{}, fmt.Errorf("%w: household id and chore id are required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return chore.Chore{}, fmt.Errorf("%w: managing chores requires privilege", ErrUnauthorized)
	}

	existing, exists, err := s.choreRepo.GetByID(ctx, householdID, choreID)
	if err != nil {
		return chore.Chore{}, fmt.Errorf("get chore: %w", err)
	}
	if !exists {
		return chore.Chore{}, fmt.Errorf("%w: chore=%s", ErrNotFound, choreID)
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = strings.TrimSpace(input.Description)
	existing.Points = input.Points
	existing.IsBonus = input.IsBonus
	existing.UpdatedAt = s.now().UTC()
	if err := existing.Validate(); err != nil {
		return chore.Chore{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.choreRepo.Update(ctx, existing); err != nil {
		return chore.Chore{}, fmt.Errorf("update chore: %w", err)
	}
	return existing, nil
}

// Delete deactivates the chore. Past assignments keep referencing it.
func (s *ChoreService) Delete(ctx context.Context, householdID, choreID string, actor member.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChoreService.Delete")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	choreID = strings.TrimSpace(choreID)
	if householdID == "" || choreID == "" {
		return fmt.Errorf("%w: household id and chore id are required", ErrInvalidInput)
	}
	if !actor.Privileged {
		return fmt.Errorf("%w: managing chores requires privilege", ErrUnauthorized)
	}

	_, exists, err := s.choreRepo.GetByID(ctx, householdID, choreID)
	if err != nil {
		return fmt.Errorf("get chore: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: chore=%s", ErrNotFound, choreID)
	}

	if err := s.choreRepo.Deactivate(ctx, householdID, choreID); err != nil {
		return fmt.Errorf("deactivate chore: %w", err)
	}
	return nil
}
