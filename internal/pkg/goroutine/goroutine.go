package goroutine

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/chamindaf/lion-svc/internal/pkg/stacktrace"
)

// Manager runs background goroutines behind a semaphore so a burst of work
// cannot exhaust the process, and recovers panics with a logged stack.
type Manager struct {
	wg  sync.WaitGroup
	sem chan struct{}
}

// New creates a Manager that allows at most limit concurrent goroutines.
func New(limit int) *Manager {
	if limit <= 0 {
		limit = 1
	}

	return &Manager{sem: make(chan struct{}, limit)}
}

// Go schedules fn on a managed goroutine. It blocks while the concurrency
// limit is saturated.
func (m *Manager) Go(ctx context.Context, fn func(ctx context.Context)) {
	m.sem <- struct{}{}
	m.wg.Add(1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(ctx, "goroutine panic recovered",
					"panic", rec,
					"stack", stacktrace.InternalPaths(debug.Stack()),
				)
			}

			<-m.sem
			m.wg.Done()
		}()

		fn(ctx)
	}()
}

// Wait blocks until every scheduled goroutine has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}
