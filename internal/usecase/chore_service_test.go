package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/infrastructure/repository/memory"
)

func TestChoreService_Create_RequiresPrivilege(t *testing.T) {
	t.Parallel()

	service := NewChoreService(memory.NewChoreRepository(nil), nil, nil)
	input := ChoreInput{Name: "Mop the floor", Points: 12}

	plain := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID}
	if _, err := service.Create(context.Background(), testHouseholdID, input, plain); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	admin := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID, Privileged: true}
	got, err := service.Create(context.Background(), testHouseholdID, input, admin)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" || !got.IsActive || got.Points != 12 {
		t.Fatalf("unexpected chore: %+v", got)
	}
}

func TestChoreService_Create_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewChoreService(memory.NewChoreRepository(nil), nil, nil)
	admin := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID, Privileged: true}

	if _, err := service.Create(context.Background(), testHouseholdID, ChoreInput{Name: "", Points: 5}, admin); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := service.Create(context.Background(), testHouseholdID, ChoreInput{Name: "Negative", Points: -1}, admin); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative points, got %v", err)
	}
}

func TestChoreService_Delete_DeactivatesButKeepsRecord(t *testing.T) {
	t.Parallel()

	repo := memory.NewChoreRepository(testChores(1))
	service := NewChoreService(repo, nil, nil)
	admin := member.Principal{MemberID: "mbr_a", HouseholdID: testHouseholdID, Privileged: true}

	if err := service.Delete(context.Background(), testHouseholdID, "chr_a", admin); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	active, err := service.List(context.Background(), testHouseholdID)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active chores, got %d", len(active))
	}
	// soft delete keeps the row for assignment history
	if _, exists, _ := repo.GetByID(context.Background(), testHouseholdID, "chr_a"); !exists {
		t.Fatalf("expected deactivated chore to remain readable")
	}
}
