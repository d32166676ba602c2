// Package debounce coalesces bursts of triggers into single task runs.
//
// Each run carries a token from a monotonic counter. A task that
// finishes after a newer trigger has been issued can detect that with
// Current and drop its result, so a slow response never overwrites a
// newer one. Timer cancellation alone does not give that guarantee:
// the timer only covers the quiet period, not the task's own runtime.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period used when none is given.
const DefaultQuiet = 500 * time.Millisecond

type Debouncer struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
	token uint64
}

func New(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules task to run once the quiet period has elapsed
// with no further triggers. Each call supersedes any still-pending
// run and invalidates the tokens of all earlier runs, finished or not.
//
// The task runs on its own goroutine (the timer's); tasks that mutate
// shared state must synchronize on their own.
func (d *Debouncer) Trigger(task func(token uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.token += 1
	token := d.token

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { task(token) })
}

// Current reports whether token still belongs to the newest trigger.
// Tasks call this after their slow work, right before applying the
// result.
func (d *Debouncer) Current(token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return token == d.token
}

// Stop cancels the pending run, if any. It does not interrupt a task
// that already started.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
