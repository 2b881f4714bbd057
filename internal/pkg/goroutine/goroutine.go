package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"

	"github.com/shandysiswandi/floorease/internal/pkg/stacktrace"
)

// DefaultLimit is used when NewManager receives a non-positive limit.
const DefaultLimit = 64

// Manager runs long lived background tasks (broker consumers) with a
// concurrency cap, recovers their panics and collects their errors.
type Manager struct {
	wg     sync.WaitGroup
	sema   chan struct{}
	closed atomic.Bool

	mu   sync.Mutex
	errs []error
}

func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Manager{sema: make(chan struct{}, limit)}
}

// Go starts f unless the manager is closed or full, and reports whether it
// started.
func (m *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	if m.closed.Load() {
		slog.WarnContext(ctx, "goroutine manager closed, task skipped")
		return false
	}

	select {
	case m.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task skipped", "limit", cap(m.sema))
		return false
	}

	m.wg.Go(func() {
		defer func() { <-m.sema }()
		defer m.recover(ctx)

		if err := f(ctx); err != nil && !errors.Is(err, context.Canceled) {
			m.mu.Lock()
			m.errs = append(m.errs, err)
			m.mu.Unlock()
		}
	})

	return true
}

func (m *Manager) recover(ctx context.Context) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if frames := stacktrace.InternalPaths(stack); len(frames) > 0 {
		slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", frames)
		return
	}
	slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", string(stack))
}

// Wait stops accepting tasks, waits for running ones and joins their errors.
// Context cancellation is not reported as an error.
func (m *Manager) Wait() error {
	m.closed.Store(true)
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}
