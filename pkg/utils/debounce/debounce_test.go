package debounce_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ems-iodt/twinscale/pkg/utils/debounce"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	testee := debounce.New(50 * time.Millisecond)
	defer testee.Stop()

	runs := new(atomic.Int32)
	done := make(chan uint64, 16)

	for i := 0; i < 5; i++ {
		testee.Trigger(func(token uint64) {
			runs.Add(1)
			done <- token
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case token := <-done:
		if !testee.Current(token) {
			t.Error("the surviving run's token is stale")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no run happened")
	}

	// quiet period again: no further run may fire.
	time.Sleep(150 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs: got %d, want 1", got)
	}
}

func TestDebouncer_StaleTokenDetected(t *testing.T) {
	testee := debounce.New(10 * time.Millisecond)
	defer testee.Stop()

	started := make(chan uint64)
	release := make(chan struct{})

	var mu sync.Mutex
	applied := []uint64{}

	slowTask := func(token uint64) {
		started <- token
		<-release
		if !testee.Current(token) {
			return
		}
		mu.Lock()
		applied = append(applied, token)
		mu.Unlock()
	}

	testee.Trigger(slowTask)
	first := <-started

	// a newer trigger while the first task is still in flight.
	testee.Trigger(func(token uint64) {
		if !testee.Current(token) {
			return
		}
		mu.Lock()
		applied = append(applied, token)
		mu.Unlock()
	})

	time.Sleep(50 * time.Millisecond) // let the second run finish
	close(release)                    // now let the stale one complete
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	if len(applied) != 1 {
		t.Fatalf("applied: got %v, want exactly one result", applied)
	}
	if applied[0] == first {
		t.Error("the stale run's result was applied")
	}
	if applied[0] <= first {
		t.Errorf("applied token %d is not newer than %d", applied[0], first)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	testee := debounce.New(30 * time.Millisecond)

	ran := new(atomic.Bool)
	testee.Trigger(func(uint64) { ran.Store(true) })
	testee.Stop()

	time.Sleep(100 * time.Millisecond)
	if ran.Load() {
		t.Error("stopped run still fired")
	}
}
