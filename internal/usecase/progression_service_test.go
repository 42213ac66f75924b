package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/choreworld/choreworld/internal/domain/progression"
	"github.com/choreworld/choreworld/internal/infrastructure/repository/memory"
	"github.com/choreworld/choreworld/internal/platform/cache"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

func TestProgressionService_AwardExperience_LevelsUpAtThreshold(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(1))
	progressions := memory.NewProgressionRepository()
	service := NewProgressionService(members, progressions, nil, nil)

	got, err := service.AwardExperience(context.Background(), testHouseholdID, "mbr_a", 99)
	if err != nil {
		t.Fatalf("AwardExperience error: %v", err)
	}
	if got.LeveledUp || got.NewLevel != 1 || got.TotalXP != 99 {
		t.Fatalf("expected to stay level 1 at 99 XP, got %+v", got)
	}

	got, err = service.AwardExperience(context.Background(), testHouseholdID, "mbr_a", 1)
	if err != nil {
		t.Fatalf("AwardExperience error: %v", err)
	}
	if !got.LeveledUp || got.OldLevel != 1 || got.NewLevel != 2 || got.TotalXP != 100 {
		t.Fatalf("expected level up to 2 at 100 XP, got %+v", got)
	}
}

func TestProgressionService_AwardExperience_LogsLevelUpTotal(t *testing.T) {
	// Not parallel: the log mirror is process-wide.
	type record struct {
		msg  string
		args []any
	}
	var records []record
	logging.SetMirror(func(_ context.Context, _ logging.Level, msg string, args ...any) {
		records = append(records, record{msg: msg, args: args})
	})
	defer logging.SetMirror(nil)

	members := memory.NewMemberRepository(testMembers(1))
	progressions := memory.NewProgressionRepository()
	service := NewProgressionService(members, progressions, nil, logging.NewNop())

	got, err := service.AwardExperience(context.Background(), testHouseholdID, "mbr_a", 120)
	if err != nil {
		t.Fatalf("AwardExperience error: %v", err)
	}
	if !got.LeveledUp {
		t.Fatalf("expected a level up at 120 XP, got %+v", got)
	}

	var fields map[string]any
	for _, rec := range records {
		if rec.msg != "member leveled up" {
			continue
		}
		fields = make(map[string]any, len(rec.args)/2)
		for i := 0; i+1 < len(rec.args); i += 2 {
			key, ok := rec.args[i].(string)
			if !ok {
				continue
			}
			fields[key] = rec.args[i+1]
		}
	}
	if fields == nil {
		t.Fatalf("expected a level up log record, got %+v", records)
	}
	if fields["total_xp"] != 120 {
		t.Fatalf("expected total_xp=120 in level up log, got %v", fields["total_xp"])
	}
	if fields["member_id"] != "mbr_a" || fields["new_level"] != 2 {
		t.Fatalf("unexpected level up log fields: %+v", fields)
	}
}

func TestProgressionService_AwardExperience_CrossesMultipleLevels(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(1))
	progressions := memory.NewProgressionRepository()
	service := NewProgressionService(members, progressions, nil, nil)

	got, err := service.AwardExperience(context.Background(), testHouseholdID, "mbr_a", 500)
	if err != nil {
		t.Fatalf("AwardExperience error: %v", err)
	}
	if !got.LeveledUp || got.OldLevel != 1 || got.NewLevel != 4 {
		t.Fatalf("expected a single award to cross to level 4, got %+v", got)
	}
	if got.Progress.CurrentXP != 500-475 {
		t.Fatalf("expected 25 XP into level 4, got %+v", got.Progress)
	}
}

func TestProgressionService_AwardExperience_RejectsNegativeAmount(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(1))
	progressions := memory.NewProgressionRepository()
	service := NewProgressionService(members, progressions, nil, nil)

	_, err := service.AwardExperience(context.Background(), testHouseholdID, "mbr_a", -5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	p, err := progressions.Get(context.Background(), testHouseholdID, "mbr_a")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if p.TotalXP != 0 || p.Level != 1 {
		t.Fatalf("rejected award must not touch state, got %+v", p)
	}
}

func TestProgressionService_Leaderboard_RanksByLevelThenXP(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(4))
	progressions := memory.NewProgressionRepository()
	seed := []progression.Progression{
		{MemberID: "mbr_a", HouseholdID: testHouseholdID, Level: 3, TotalXP: 200},
		{MemberID: "mbr_b", HouseholdID: testHouseholdID, Level: 3, TotalXP: 500},
		{MemberID: "mbr_c", HouseholdID: testHouseholdID, Level: 2, TotalXP: 900},
	}
	for _, p := range seed {
		if err := progressions.Set(context.Background(), p); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	service := NewProgressionService(members, progressions, nil, nil)

	got, err := service.Leaderboard(context.Background(), testHouseholdID)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected every eligible member ranked, got %d entries", len(got))
	}

	wantOrder := []string{"mbr_b", "mbr_a", "mbr_c", "mbr_d"}
	for i, memberID := range wantOrder {
		if got[i].MemberID != memberID {
			t.Fatalf("rank %d: expected %s, got %s", i+1, memberID, got[i].MemberID)
		}
		if got[i].Rank != i+1 {
			t.Fatalf("expected sequential rank %d, got %d", i+1, got[i].Rank)
		}
	}
	// mbr_d never earned XP and still shows up with the defaults
	if got[3].Level != 1 || got[3].TotalXP != 0 {
		t.Fatalf("expected default progression for mbr_d, got %+v", got[3])
	}
	if got[0].Title == "" {
		t.Fatalf("expected a level title on entries, got %+v", got[0])
	}
}

func TestProgressionService_Leaderboard_CacheInvalidatedByAward(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(2))
	progressions := memory.NewProgressionRepository()
	board := cache.NewStore(time.Minute)
	service := NewProgressionService(members, progressions, board, nil)

	first, err := service.Leaderboard(context.Background(), testHouseholdID)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if first[0].TotalXP != 0 {
		t.Fatalf("expected empty board first, got %+v", first[0])
	}

	if _, err := service.AwardExperience(context.Background(), testHouseholdID, "mbr_b", 120); err != nil {
		t.Fatalf("AwardExperience error: %v", err)
	}

	second, err := service.Leaderboard(context.Background(), testHouseholdID)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if second[0].MemberID != "mbr_b" || second[0].TotalXP != 120 || second[0].Level != 2 {
		t.Fatalf("expected award to invalidate the cached board, got %+v", second[0])
	}
}

func TestProgressionService_MemberStats_UnknownMember(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(1))
	progressions := memory.NewProgressionRepository()
	service := NewProgressionService(members, progressions, nil, nil)

	_, err := service.MemberStats(context.Background(), testHouseholdID, "mbr_ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
