package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/choreworld/choreworld/internal/domain/assignment"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/domain/schedule"
	"github.com/choreworld/choreworld/internal/infrastructure/repository/memory"
)

type assignmentFixture struct {
	members      *memory.MemberRepository
	chores       *memory.ChoreRepository
	assignments  *memory.AssignmentRepository
	progressions *memory.ProgressionRepository
	service      *AssignmentService
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	f := &assignmentFixture{
		members:      memory.NewMemberRepository(testMembers(3)),
		chores:       memory.NewChoreRepository(testChores(3)),
		assignments:  memory.NewAssignmentRepository(),
		progressions: memory.NewProgressionRepository(),
	}
	progressionSvc := NewProgressionService(f.members, f.progressions, nil, nil)
	f.service = NewAssignmentService(f.members, f.chores, f.assignments, progressionSvc, nil, time.Monday, nil)
	return f
}

func (f *assignmentFixture) seedDaily(t *testing.T, id, memberID string, points int, bonus bool) {
	t.Helper()

	err := f.assignments.CreateDailyAssignment(context.Background(), assignment.Daily{
		ID:          id,
		HouseholdID: testHouseholdID,
		MemberID:    memberID,
		ChoreID:     "chr_a",
		ChoreName:   "Chore A",
		Points:      points,
		IsBonus:     bonus,
		Date:        schedule.DateOnly(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)),
		CreatedAt:   time.Date(2026, 3, 4, 1, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed daily assignment: %v", err)
	}
}

func TestAssignmentService_Complete_AwardsPoints(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.seedDaily(t, "dca_1", "mbr_a", 10, false)

	actor := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID}
	got, err := f.service.Complete(context.Background(), testHouseholdID, "dca_1", actor)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if !got.Assignment.Completed || got.Assignment.CompletedAt == nil {
		t.Fatalf("expected completed record, got %+v", got.Assignment)
	}
	if got.Award.XPGained != 10 || got.Award.TotalXP != 10 {
		t.Fatalf("expected 10 XP awarded, got %+v", got.Award)
	}

	completions, err := f.assignments.ListCompletionsInRange(
		context.Background(), testHouseholdID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("ListCompletionsInRange error: %v", err)
	}
	if len(completions) != 1 || completions[0].XPAwarded != 10 {
		t.Fatalf("expected one completion record with 10 XP, got %+v", completions)
	}
}

func TestAssignmentService_Complete_BonusPaysDouble(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.seedDaily(t, "dca_1", "mbr_a", 40, true)

	actor := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID}
	got, err := f.service.Complete(context.Background(), testHouseholdID, "dca_1", actor)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got.Award.XPGained != 80 {
		t.Fatalf("expected doubled XP for bonus chore, got %d", got.Award.XPGained)
	}
}

func TestAssignmentService_Complete_OnlyOnce(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.seedDaily(t, "dca_1", "mbr_a", 10, false)

	actor := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID}
	if _, err := f.service.Complete(context.Background(), testHouseholdID, "dca_1", actor); err != nil {
		t.Fatalf("first Complete error: %v", err)
	}

	_, err := f.service.Complete(context.Background(), testHouseholdID, "dca_1", actor)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on repeat completion, got %v", err)
	}

	p, err := f.progressions.Get(context.Background(), testHouseholdID, "mbr_a")
	if err != nil {
		t.Fatalf("Get progression error: %v", err)
	}
	if p.TotalXP != 10 {
		t.Fatalf("repeat completion must not double-pay, got %d XP", p.TotalXP)
	}
}

func TestAssignmentService_Complete_Authorization(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.seedDaily(t, "dca_1", "mbr_a", 10, false)
	f.seedDaily(t, "dca_2", "mbr_b", 10, false)

	stranger := member.Principal{MemberID: "mbr_b", HouseholdID: testHouseholdID}
	_, err := f.service.Complete(context.Background(), testHouseholdID, "dca_1", stranger)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for someone else's chore, got %v", err)
	}

	admin := member.Principal{MemberID: "mbr_c", HouseholdID: testHouseholdID, Privileged: true}
	got, err := f.service.Complete(context.Background(), testHouseholdID, "dca_2", admin)
	if err != nil {
		t.Fatalf("privileged Complete error: %v", err)
	}
	// XP lands on the assignee, not the actor
	if got.Assignment.MemberID != "mbr_b" {
		t.Fatalf("expected assignment owner mbr_b, got %s", got.Assignment.MemberID)
	}
	p, err := f.progressions.Get(context.Background(), testHouseholdID, "mbr_b")
	if err != nil {
		t.Fatalf("Get progression error: %v", err)
	}
	if p.TotalXP != 10 {
		t.Fatalf("expected owner to receive XP, got %d", p.TotalXP)
	}
}

func TestAssignmentService_AssignManual_ReplacesExisting(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	date := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	f.seedDaily(t, "dca_old", "mbr_a", 10, false)

	plain := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID}
	if _, err := f.service.AssignManual(context.Background(), testHouseholdID, "mbr_a", "chr_b", date, plain); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for plain member, got %v", err)
	}

	admin := member.Principal{MemberID: "mbr_c", HouseholdID: testHouseholdID, Privileged: true}
	got, err := f.service.AssignManual(context.Background(), testHouseholdID, "mbr_a", "chr_b", date, admin)
	if err != nil {
		t.Fatalf("AssignManual error: %v", err)
	}
	if got.ChoreID != "chr_b" || got.MemberID != "mbr_a" {
		t.Fatalf("unexpected manual assignment: %+v", got)
	}

	rows, err := f.assignments.ListDailyAssignments(context.Background(), testHouseholdID, schedule.DateOnly(date))
	if err != nil {
		t.Fatalf("ListDailyAssignments error: %v", err)
	}
	if len(rows) != 1 || rows[0].ChoreID != "chr_b" {
		t.Fatalf("expected old record replaced, got %+v", rows)
	}
}

func TestAssignmentService_Delete_RequiresPrivilege(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.seedDaily(t, "dca_1", "mbr_a", 10, false)

	plain := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID}
	if err := f.service.Delete(context.Background(), testHouseholdID, "dca_1", plain); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	admin := member.Principal{MemberID: "mbr_c", HouseholdID: testHouseholdID, Privileged: true}
	if err := f.service.Delete(context.Background(), testHouseholdID, "dca_1", admin); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, exists, _ := f.assignments.GetDailyAssignment(context.Background(), testHouseholdID, "dca_1"); exists {
		t.Fatalf("expected record gone after delete")
	}
}

func TestAssignmentService_Summary_AggregatesPeriodCompletions(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.seedDaily(t, "dca_1", "mbr_a", 10, false)
	f.seedDaily(t, "dca_2", "mbr_b", 15, false)

	f.service.now = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }

	for _, id := range []string{"dca_1", "dca_2"} {
		admin := member.Principal{MemberID: "mbr_c", HouseholdID: testHouseholdID, Privileged: true}
		if _, err := f.service.Complete(context.Background(), testHouseholdID, id, admin); err != nil {
			t.Fatalf("Complete %s error: %v", id, err)
		}
	}

	got, err := f.service.Summary(context.Background(), testHouseholdID, time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if !got.PeriodStart.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected period start: %v", got.PeriodStart)
	}
	if len(got.Members) != 3 {
		t.Fatalf("expected a row per eligible member, got %d", len(got.Members))
	}

	byMember := make(map[string]MemberWeeklySummary, len(got.Members))
	for _, row := range got.Members {
		byMember[row.MemberID] = row
	}
	if row := byMember["mbr_a"]; row.CompletedCount != 1 || row.PointsEarned != 10 || row.XPEarned != 10 {
		t.Fatalf("unexpected mbr_a row: %+v", row)
	}
	if row := byMember["mbr_b"]; row.CompletedCount != 1 || row.PointsEarned != 15 {
		t.Fatalf("unexpected mbr_b row: %+v", row)
	}
	if row := byMember["mbr_c"]; row.CompletedCount != 0 {
		t.Fatalf("expected empty row for mbr_c, got %+v", row)
	}
}
