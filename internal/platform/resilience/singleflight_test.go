package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32

	const workers = 25
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("leaderboard:fam-1", func() (any, error) {
				executions.Add(1)
				time.Sleep(15 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if got, _ := v.(int); got != 42 {
				t.Errorf("unexpected shared value: %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
}

func TestSingleFlight_ErrorSharedWithFollowers(t *testing.T) {
	var g SingleFlight
	wantErr := errors.New("load failed")

	release := make(chan struct{})
	leaderStarted := make(chan struct{})
	go func() {
		_, _, _ = g.Do("k", func() (any, error) {
			close(leaderStarted)
			<-release
			return nil, wantErr
		})
	}()

	<-leaderStarted
	done := make(chan error, 1)
	go func() {
		_, err, shared := g.Do("k", func() (any, error) { return nil, nil })
		if !shared {
			t.Error("expected follower to share the leader's result")
		}
		done <- err
	}()

	// Give the follower time to block on the leader's in-flight call before
	// releasing the leader; otherwise the leader can finish first and the
	// follower would start a fresh call of its own.
	time.Sleep(50 * time.Millisecond)
	close(release)
	if err := <-done; !errors.Is(err, wantErr) {
		t.Fatalf("follower error = %v, want %v", err, wantErr)
	}
}
