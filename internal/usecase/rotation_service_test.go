package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/choreworld/choreworld/internal/domain/duty"
	"github.com/choreworld/choreworld/internal/infrastructure/repository/memory"
)

func testDutyTypes() []duty.Type {
	created := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return []duty.Type{
		{ID: "dty_trash", HouseholdID: testHouseholdID, Name: "Trash duty", IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "dty_kitchen", HouseholdID: testHouseholdID, Name: "Kitchen patrol", IsActive: true, CreatedAt: created, UpdatedAt: created},
	}
}

func activeHolder(t *testing.T, assignments *memory.AssignmentRepository, dutyTypeID string) string {
	t.Helper()

	rows, err := assignments.ListActiveWeeklyAssignments(context.Background(), testHouseholdID)
	if err != nil {
		t.Fatalf("ListActiveWeeklyAssignments error: %v", err)
	}
	for _, w := range rows {
		if w.DutyTypeID == dutyTypeID {
			return w.MemberID
		}
	}
	t.Fatalf("no active assignment for duty %s", dutyTypeID)
	return ""
}

func TestRotationService_RotateWeekly_CyclesThroughMembers(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(3))
	duties := memory.NewDutyRepository(testDutyTypes())
	assignments := memory.NewAssignmentRepository()

	service := NewRotationService(members, duties, assignments, nil, time.Monday, nil)

	// 2026-03-02 is a Monday
	week := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	want := []string{"mbr_a", "mbr_b", "mbr_c", "mbr_a"}
	for i, expected := range want {
		ref := week.AddDate(0, 0, 7*i)
		if err := service.RotateWeekly(context.Background(), testHouseholdID, "dty_trash", ref); err != nil {
			t.Fatalf("RotateWeekly week %d error: %v", i+1, err)
		}
		if got := activeHolder(t, assignments, "dty_trash"); got != expected {
			t.Fatalf("week %d: expected holder %s, got %s", i+1, expected, got)
		}
	}
}

func TestRotationService_RotateWeekly_SamePeriodIsNoOp(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(3))
	duties := memory.NewDutyRepository(testDutyTypes())
	assignments := memory.NewAssignmentRepository()

	service := NewRotationService(members, duties, assignments, nil, time.Monday, nil)

	monday := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	thursday := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)
	if err := service.RotateWeekly(context.Background(), testHouseholdID, "dty_trash", monday); err != nil {
		t.Fatalf("RotateWeekly error: %v", err)
	}
	if err := service.RotateWeekly(context.Background(), testHouseholdID, "dty_trash", thursday); err != nil {
		t.Fatalf("RotateWeekly retrigger error: %v", err)
	}

	if got := activeHolder(t, assignments, "dty_trash"); got != "mbr_a" {
		t.Fatalf("expected holder to stay mbr_a within the period, got %s", got)
	}
	starts, err := assignments.ListWeeklyPeriodStarts(context.Background(), testHouseholdID)
	if err != nil {
		t.Fatalf("ListWeeklyPeriodStarts error: %v", err)
	}
	if len(starts) != 1 {
		t.Fatalf("expected a single recorded period, got %d", len(starts))
	}
}

func TestRotationService_RotateWeekly_RestartsWhenHolderLeaves(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(3))
	duties := memory.NewDutyRepository(testDutyTypes())
	assignments := memory.NewAssignmentRepository()

	service := NewRotationService(members, duties, assignments, nil, time.Monday, nil)

	week1 := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	if err := service.RotateWeekly(context.Background(), testHouseholdID, "dty_trash", week1); err != nil {
		t.Fatalf("RotateWeekly week 1 error: %v", err)
	}
	if got := activeHolder(t, assignments, "dty_trash"); got != "mbr_a" {
		t.Fatalf("expected mbr_a first, got %s", got)
	}

	members.SetEligible("mbr_a", false)

	week2 := week1.AddDate(0, 0, 7)
	if err := service.RotateWeekly(context.Background(), testHouseholdID, "dty_trash", week2); err != nil {
		t.Fatalf("RotateWeekly week 2 error: %v", err)
	}
	if got := activeHolder(t, assignments, "dty_trash"); got != "mbr_b" {
		t.Fatalf("expected rotation to restart at mbr_b, got %s", got)
	}
}

func TestRotationService_RotateWeekly_HonorsConfiguredOrder(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(3))
	duties := memory.NewDutyRepository(testDutyTypes())
	assignments := memory.NewAssignmentRepository()

	if err := duties.SetRotationOrder(context.Background(), testHouseholdID, "dty_trash", []string{"mbr_c", "mbr_a"}); err != nil {
		t.Fatalf("SetRotationOrder error: %v", err)
	}

	service := NewRotationService(members, duties, assignments, nil, time.Monday, nil)

	week1 := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	// configured members lead, the unlisted mbr_b joins at the tail
	want := []string{"mbr_c", "mbr_a", "mbr_b", "mbr_c"}
	for i, expected := range want {
		ref := week1.AddDate(0, 0, 7*i)
		if err := service.RotateWeekly(context.Background(), testHouseholdID, "dty_trash", ref); err != nil {
			t.Fatalf("RotateWeekly week %d error: %v", i+1, err)
		}
		if got := activeHolder(t, assignments, "dty_trash"); got != expected {
			t.Fatalf("week %d: expected holder %s, got %s", i+1, expected, got)
		}
	}
}

func TestRotationService_RotateAll_CoversEveryActiveDuty(t *testing.T) {
	t.Parallel()

	members := memory.NewMemberRepository(testMembers(3))
	duties := memory.NewDutyRepository(testDutyTypes())
	assignments := memory.NewAssignmentRepository()

	service := NewRotationService(members, duties, assignments, nil, time.Monday, nil)

	ref := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	if err := service.RotateAll(context.Background(), testHouseholdID, ref); err != nil {
		t.Fatalf("RotateAll error: %v", err)
	}

	rows, err := assignments.ListActiveWeeklyAssignments(context.Background(), testHouseholdID)
	if err != nil {
		t.Fatalf("ListActiveWeeklyAssignments error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 active weekly assignments, got %d", len(rows))
	}
	for _, w := range rows {
		if w.MemberID == "" {
			t.Fatalf("duty %s rotated to an empty member", w.DutyTypeID)
		}
	}
}
