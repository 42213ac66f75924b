package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/domain/progression"
	"github.com/choreworld/choreworld/internal/platform/cache"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

const leaderboardCachePrefix = "leaderboard:"

// ProgressionService converts completed work into XP, levels and rankings.
type ProgressionService struct {
	memberRepo      member.Repository
	progressionRepo progression.Repository
	boardCache      *cache.Store
	logger          *logging.Logger
	now             func() time.Time
}

func NewProgressionService(
	memberRepo member.Repository,
	progressionRepo progression.Repository,
	boardCache *cache.Store,
	logger *logging.Logger,
) *ProgressionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProgressionService{
		memberRepo:      memberRepo,
		progressionRepo: progressionRepo,
		boardCache:      boardCache,
		logger:          logger,
		now:             time.Now,
	}
}

// AwardExperience adds amount XP and recomputes the level. Negative amounts
// indicate a caller bug and are rejected outright rather than clamped.
func (s *ProgressionService) AwardExperience(ctx context.Context, householdID, memberID string, amount int) (progression.AwardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.AwardExperience")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	memberID = strings.TrimSpace(memberID)
	if householdID == "" {
		return progression.AwardResult{}, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}
	if memberID == "" {
		return progression.AwardResult{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	if amount < 0 {
		return progression.AwardResult{}, fmt.Errorf("%w: experience amount must be >= 0, got %d", ErrInvalidInput, amount)
	}

	updated, err := s.progressionRepo.AddXP(ctx, householdID, memberID, amount)
	if err != nil {
		return progression.AwardResult{}, fmt.Errorf("add xp: %w", err)
	}

	if s.boardCache != nil {
		s.boardCache.Delete(ctx, leaderboardCacheKey(householdID))
	}

	oldLevel := progression.LevelFromTotalXP(updated.TotalXP - amount)
	result := progression.AwardResult{
		LeveledUp: updated.Level > oldLevel,
		OldLevel:  oldLevel,
		NewLevel:  updated.Level,
		XPGained:  amount,
		TotalXP:   updated.TotalXP,
		Progress:  progression.ProgressWithinLevel(updated.TotalXP, updated.Level),
	}

	if result.LeveledUp {
		s.logger.InfoContext(ctx, "member leveled up",
			"household_id", householdID,
			"member_id", memberID,
			"old_level", result.OldLevel,
			"new_level", result.NewLevel,
			"total_xp", result.TotalXP,
		)
	}

	return result, nil
}

// MemberStats returns one member's level position for profile views.
func (s *ProgressionService) MemberStats(ctx context.Context, householdID, memberID string) (progression.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.MemberStats")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	memberID = strings.TrimSpace(memberID)
	if householdID == "" || memberID == "" {
		return progression.LeaderboardEntry{}, fmt.Errorf("%w: household id and member id are required", ErrInvalidInput)
	}

	m, exists, err := s.memberRepo.GetByID(ctx, householdID, memberID)
	if err != nil {
		return progression.LeaderboardEntry{}, fmt.Errorf("get member: %w", err)
	}
	if !exists {
		return progression.LeaderboardEntry{}, fmt.Errorf("%w: member=%s", ErrNotFound, memberID)
	}

	p, err := s.progressionRepo.Get(ctx, householdID, memberID)
	if err != nil {
		return progression.LeaderboardEntry{}, fmt.Errorf("get progression: %w", err)
	}

	return progression.LeaderboardEntry{
		MemberID:    memberID,
		DisplayName: m.DisplayName,
		Level:       p.Level,
		TotalXP:     p.TotalXP,
		Title:       progression.TitleForLevel(p.Level),
		Progress:    progression.ProgressWithinLevel(p.TotalXP, p.Level),
	}, nil
}

// Leaderboard ranks eligible members by level, then total XP. Ranks are
// sequential from 1; exact ties keep their stable sorted order.
func (s *ProgressionService) Leaderboard(ctx context.Context, householdID string) ([]progression.LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProgressionService.Leaderboard")
	defer span.End()

	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, fmt.Errorf("%w: household id is required", ErrInvalidInput)
	}

	if s.boardCache == nil {
		return s.loadLeaderboard(ctx, householdID)
	}

	value, err := s.boardCache.GetOrLoad(ctx, leaderboardCacheKey(householdID), func(ctx context.Context) (any, error) {
		return s.loadLeaderboard(ctx, householdID)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]progression.LeaderboardEntry)
	if !ok {
		return s.loadLeaderboard(ctx, householdID)
	}
	return entries, nil
}

func (s *ProgressionService) loadLeaderboard(ctx context.Context, householdID string) ([]progression.LeaderboardEntry, error) {
	members, err := s.memberRepo.ListEligible(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list eligible members: %w", err)
	}

	states, err := s.progressionRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list progression: %w", err)
	}
	byMember := make(map[string]progression.Progression, len(states))
	for _, p := range states {
		byMember[p.MemberID] = p
	}

	entries := make([]progression.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		p, ok := byMember[m.ID]
		if !ok {
			p = progression.NewDefault(householdID, m.ID)
		}
		entries = append(entries, progression.LeaderboardEntry{
			MemberID:    m.ID,
			DisplayName: m.DisplayName,
			Level:       p.Level,
			TotalXP:     p.TotalXP,
			Title:       progression.TitleForLevel(p.Level),
			Progress:    progression.ProgressWithinLevel(p.TotalXP, p.Level),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level > entries[j].Level
		}
		return entries[i].TotalXP > entries[j].TotalXP
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func leaderboardCacheKey(householdID string) string {
	return leaderboardCachePrefix + householdID
}
