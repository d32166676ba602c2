// Package context provides deadline-bounded contexts for tests.
package context

import (
	"context"
	"testing"
	"time"
)

// WithTest derives a context that expires one second ahead of the
// test deadline, leaving room to clean up before the runner kills it.
func WithTest(ctx context.Context, t *testing.T) (context.Context, func()) {
	deadline, ok := t.Deadline()
	if !ok {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, deadline.Add(-1*time.Second))
}
