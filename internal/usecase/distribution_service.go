package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/choreworld/choreworld/internal/domain/assignment"
	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/domain/schedule"
	"github.com/choreworld/choreworld/internal/platform/id"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

// DistributionService hands out one chore per eligible member per day.
type DistributionService struct {
	memberRepo     member.Repository
	choreRepo      chore.Repository
	assignmentRepo assignment.Repository
	idGen          id.Generator
	logger         *logging.Logger
	now            func() time.Time
	shuffle        func(n int, swap func(i, j int))
}

func NewDistributionService(
	memberRepo member.Repository,
	choreRepo chore.Repository,
	assignmentRepo assignment.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *DistributionService {
	if idGen == nil {
		idGen = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DistributionService{
		memberRepo:     memberRepo,
		choreRepo:      choreRepo,
		assignmentRepo: assignmentRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
		shuffle:        rand.Shuffle,
	}
}

// DistributeDaily assigns chores for the given date. Running it twice for the
// same (household, date) is a no-op: the first run wins and later triggers
// skip on the existence check, with a unique index catching the race.
func (s *DistributionService) DistributeDaily(ctx context.Context, householdID string, date time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DistributionService.DistributeDaily")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date = schedule.DateOnly(date)

	exists, err := s.assignmentRepo.HasDailyAssignments(ctx, householdID, date)
	if err != nil {
		return fmt.Errorf("check daily assignments: %w", err)
	}
	if exists {
		s.logger.DebugContext(ctx, "daily assignments already present",
			"household_id", householdID,
			"date", schedule.DateKey(date),
		)
		return nil
	}

	members, err := s.memberRepo.ListEligible(ctx, householdID)
	if err != nil {
		return fmt.Errorf("list eligible members: %w", err)
	}

	active, err := s.choreRepo.ListActive(ctx, householdID)
	if err != nil {
		return fmt.Errorf("list active chores: %w", err)
	}
	// bonus chores are opt-in, the scheduler never hands them out
	pool := make([]chore.Chore, 0, len(active))
	for _, c := range active {
		if !c.IsBonus {
			pool = append(pool, c)
		}
	}

	if len(members) == 0 || len(pool) == 0 {
		s.logger.InfoContext(ctx, "daily distribution skipped",
			"household_id", householdID,
			"date", schedule.DateKey(date),
			"eligible_members", len(members),
			"active_chores", len(pool),
		)
		return nil
	}

	s.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	used := make(map[string]bool, len(pool))
	for i, m := range members {
		task := pool[i%len(pool)]
		if used[task.ID] {
			for _, alt := range pool {
				if !used[alt.ID] {
					task = alt
					break
				}
			}
		}
		used[task.ID] = true

		recordID, err := id.NewPrefixedID(s.idGen, "dca")
		if err != nil {
			return fmt.Errorf("generate daily assignment id: %w", err)
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
			Completed:   false,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.assignmentRepo.CreateDailyAssignment(ctx, record); err != nil {
			return fmt.Errorf("create daily assignment member=%s: %w", m.ID, err)
		}
	}

	s.logger.InfoContext(ctx, "daily chores distributed",
		"household_id", householdID,
		"date", schedule.DateKey(date),
		"assignment_count", len(members),
		"chore_pool", len(pool),
	)
	return nil
}
