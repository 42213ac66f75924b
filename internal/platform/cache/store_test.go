package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_LoadsOnceUnderConcurrency(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(15 * time.Millisecond)
		return "board", nil
	}

	const workers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "leaderboard:fam-9", loader)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			if got, _ := v.(string); got != "board" {
				t.Errorf("unexpected value: %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiredEntryReloads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 8, 17, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return int(calls.Load()), nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first load: %v", err)
	}

	now = now.Add(2 * time.Minute)
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got, _ := v.(int); got != 2 {
		t.Fatalf("expected reloaded value 2, got %v", v)
	}
}

func TestStore_DeletePrefixInvalidatesGroup(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "leaderboard:fam-1", 1)
	store.Set(ctx, "leaderboard:fam-2", 2)
	store.Set(ctx, "summary:fam-1", 3)

	store.DeletePrefix(ctx, "leaderboard:")

	if _, ok := store.Get(ctx, "leaderboard:fam-1"); ok {
		t.Fatal("expected leaderboard:fam-1 to be evicted")
	}
	if _, ok := store.Get(ctx, "leaderboard:fam-2"); ok {
		t.Fatal("expected leaderboard:fam-2 to be evicted")
	}
	if _, ok := store.Get(ctx, "summary:fam-1"); !ok {
		t.Fatal("expected summary:fam-1 to survive")
	}
}
