package cache

import (
	"context"

	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/domain/duty"
	"github.com/choreworld/choreworld/internal/domain/household"
	"github.com/choreworld/choreworld/internal/domain/member"
	basecache "github.com/choreworld/choreworld/internal/platform/cache"
)

// Read-through caching decorators for the catalog repositories. These tables
// change rarely but are read on every scheduler run and most API calls, so a
// short TTL takes most of the load off postgres. Write paths invalidate
// eagerly rather than waiting for the TTL.

type HouseholdRepository struct {
	next  household.Repository
	cache *basecache.Store
}

func NewHouseholdRepository(next household.Repository, cache *basecache.Store) *HouseholdRepository {
	return &HouseholdRepository{next: next, cache: cache}
}

func (r *HouseholdRepository) ListActive(ctx context.Context) ([]household.Household, error) {
	v, err := r.cache.GetOrLoad(ctx, "household:list", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return append([]household.Household(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]household.Household)
	return append([]household.Household(nil), items...), nil
}

func (r *HouseholdRepository) GetByID(ctx context.Context, householdID string) (household.Household, bool, error) {
	key := "household:id:" + householdID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, householdID)
		if err != nil {
			return nil, err
		}
		return cachedHousehold{value: item, exists: exists}, nil
	})
	if err != nil {
		return household.Household{}, false, err
	}

	cached, _ := v.(cachedHousehold)
	return cached.value, cached.exists, nil
}

type cachedHousehold struct {
	value  household.Household
	exists bool
}

type MemberRepository struct {
	next  member.Repository
	cache *basecache.Store
}

func NewMemberRepository(next member.Repository, cache *basecache.Store) *MemberRepository {
	return &MemberRepository{next: next, cache: cache}
}

func (r *MemberRepository) ListEligible(ctx context.Context, householdID string) ([]member.Member, error) {
	key := "member:eligible:" + householdID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListEligible(ctx, householdID)
		if err != nil {
			return nil, err
		}
		return append([]member.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]member.Member)
	return append([]member.Member(nil), items...), nil
}

func (r *MemberRepository) GetByID(ctx context.Context, householdID, memberID string) (member.Member, bool, error) {
	key := "member:id:" + householdID + ":" + memberID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, householdID, memberID)
		if err != nil {
			return nil, err
		}
		return cachedMember{value: item, exists: exists}, nil
	})
	if err != nil {
		return member.Member{}, false, err
	}

	cached, _ := v.(cachedMember)
	return cached.value, cached.exists, nil
}

type cachedMember struct {
	value  member.Member
	exists bool
}

type ChoreRepository struct {
	next  chore.Repository
	cache *basecache.Store
}

func NewChoreRepository(next chore.Repository, cache *basecache.Store) *ChoreRepository {
	return &ChoreRepository{next: next, cache: cache}
}

func (r *ChoreRepository) ListActive(ctx context.Context, householdID string) ([]chore.Chore, error) {
	key := choreListKey(householdID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx, householdID)
		if err != nil {
			return nil, err
		}
		return append([]chore.Chore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]chore.Chore)
	return append([]chore.Chore(nil), items...), nil
}

func (r *ChoreRepository) GetByID(ctx context.Context, householdID, choreID string) (chore.Chore, bool, error) {
	key := choreByIDKey(householdID, choreID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, householdID, choreID)
		if err != nil {
			return nil, err
		}
		return cachedChore{value: item, exists: exists}, nil
	})
	if err != nil {
		return chore.Chore{}, false, err
	}

	cached, _ := v.(cachedChore)
	return cached.value, cached.exists, nil
}

func (r *ChoreRepository) Create(ctx context.Context, c chore.Chore) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.HouseholdID, c.ID)
	return nil
}

func (r *ChoreRepository) Update(ctx context.Context, c chore.Chore) error {
	if err := r.next.Update(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.HouseholdID, c.ID)
	return nil
}

func (r *ChoreRepository) Deactivate(ctx context.Context, householdID, choreID string) error {
	if err := r.next.Deactivate(ctx, householdID, choreID); err != nil {
		return err
	}
	r.invalidate(ctx, householdID, choreID)
	return nil
}

func (r *ChoreRepository) invalidate(ctx context.Context, householdID, choreID string) {
	r.cache.Delete(ctx, choreListKey(householdID))
	r.cache.Delete(ctx, choreByIDKey(householdID, choreID))
}

type cachedChore struct {
	value  chore.Chore
	exists bool
}

func choreListKey(householdID string) string {
	return "chore:list:" + householdID
}

func choreByIDKey(householdID, choreID string) string {
	return "chore:id:" + householdID + ":" + choreID
}

type DutyRepository struct {
	next  duty.Repository
	cache *basecache.Store
}

func NewDutyRepository(next duty.Repository, cache *basecache.Store) *DutyRepository {
	return &DutyRepository{next: next, cache: cache}
}

func (r *DutyRepository) ListActive(ctx context.Context, householdID string) ([]duty.Type, error) {
	key := dutyListKey(householdID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx, householdID)
		if err != nil {
			return nil, err
		}
		return append([]duty.Type(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]duty.Type)
	return append([]duty.Type(nil), items...), nil
}

func (r *DutyRepository) GetByID(ctx context.Context, householdID, dutyTypeID string) (duty.Type, bool, error) {
	key := dutyByIDKey(householdID, dutyTypeID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, householdID, dutyTypeID)
		if err != nil {
			return nil, err
		}
		return cachedDutyType{value: item, exists: exists}, nil
	})
	if err != nil {
		return duty.Type{}, false, err
	}

	cached, _ := v.(cachedDutyType)
	return cached.value, cached.exists, nil
}

func (r *DutyRepository) Create(ctx context.Context, t duty.Type) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.HouseholdID, t.ID)
	return nil
}

func (r *DutyRepository) Update(ctx context.Context, t duty.Type) error {
	if err := r.next.Update(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.HouseholdID, t.ID)
	return nil
}

func (r *DutyRepository) Deactivate(ctx context.Context, householdID, dutyTypeID string) error {
	if err := r.next.Deactivate(ctx, householdID, dutyTypeID); err != nil {
		return err
	}
	r.invalidate(ctx, householdID, dutyTypeID)
	return nil
}

func (r *DutyRepository) GetRotationOrder(ctx context.Context, householdID, dutyTypeID string) ([]string, error) {
	key := rotationOrderKey(householdID, dutyTypeID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		order, err := r.next.GetRotationOrder(ctx, householdID, dutyTypeID)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), order...), nil
	})
	if err != nil {
		return nil, err
	}

	order, _ := v.([]string)
	return append([]string(nil), order...), nil
}

func (r *DutyRepository) SetRotationOrder(ctx context.Context, householdID, dutyTypeID string, memberIDs []string) error {
	if err := r.next.SetRotationOrder(ctx, householdID, dutyTypeID, memberIDs); err != nil {
		return err
	}
	r.cache.Delete(ctx, rotationOrderKey(householdID, dutyTypeID))
	return nil
}

func (r *DutyRepository) invalidate(ctx context.Context, householdID, dutyTypeID string) {
	r.cache.Delete(ctx, dutyListKey(householdID))
	r.cache.Delete(ctx, dutyByIDKey(householdID, dutyTypeID))
	r.cache.Delete(ctx, rotationOrderKey(householdID, dutyTypeID))
}

type cachedDutyType struct {
	value  duty.Type
	exists bool
}

func dutyListKey(householdID string) string {
	return "duty:list:" + householdID
}

func dutyByIDKey(householdID, dutyTypeID string) string {
	return "duty:id:" + householdID + ":" + dutyTypeID
}

func rotationOrderKey(householdID, dutyTypeID string) string {
	return "duty:rotation-order:" + householdID + ":" + dutyTypeID
}
