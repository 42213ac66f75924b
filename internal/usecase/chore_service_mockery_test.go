package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/domain/member"
	choremock "github.com/choreworld/choreworld/internal/mocks/domain/chore"
)

func TestChoreService_List_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	choreRepo := choremock.NewRepository(t)

	service := NewChoreService(choreRepo, nil, nil)
	expected := []chore.Chore{
		{ID: "chr_dishes", HouseholdID: testHouseholdID, Name: "Wash the dishes", Points: 10, IsActive: true},
		{ID: "chr_vacuum", HouseholdID: testHouseholdID, Name: "Vacuum the living room", Points: 15, IsActive: true},
	}

	choreRepo.
		On("ListActive", mock.MatchedBy(func(v context.Context) bool { return v != nil }), testHouseholdID).
		Return(expected, nil).
		Once()

	got, err := service.List(ctx, testHouseholdID)
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("unexpected chore count: got=%d want=%d", len(got), len(expected))
	}
	if got[0].ID != expected[0].ID {
		t.Fatalf("unexpected chore id: got=%s want=%s", got[0].ID, expected[0].ID)
	}
}

func TestChoreService_Update_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	choreRepo := choremock.NewRepository(t)

	service := NewChoreService(choreRepo, nil, nil)
	actor := member.Principal{MemberID: "mbr_alex", HouseholdID: testHouseholdID, Privileged: true}

	choreRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), testHouseholdID, "chr_missing").
		Return(chore.Chore{}, false, nil).
		Once()

	_, err := service.Update(ctx, testHouseholdID, "chr_missing", ChoreInput{Name: "Renamed", Points: 5}, actor)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChoreService_Delete_RepoFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	choreRepo := choremock.NewRepository(t)

	service := NewChoreService(choreRepo, nil, nil)
	actor := member.Principal{MemberID: "mbr_alex", HouseholdID: testHouseholdID, Privileged: true}
	repoErr := errors.New("connection reset")

	choreRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), testHouseholdID, "chr_dishes").
		Return(chore.Chore{ID: "chr_dishes", HouseholdID: testHouseholdID, Name: "Wash the dishes", Points: 10, IsActive: true}, true, nil).
		Once()
	choreRepo.
		On("Deactivate", mock.MatchedBy(func(v context.Context) bool { return v != nil }), testHouseholdID, "chr_dishes").
		Return(repoErr).
		Once()

	err := service.Delete(ctx, testHouseholdID, "chr_dishes", actor)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
