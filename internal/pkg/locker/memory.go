package locker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Memory is an in-process Locker for tests and single instance runs. The
// ttl is ignored.
type Memory struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// slot is dropped from the map once no holder or waiter references it.
type slot struct {
	ch   chan struct{}
	refs int
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string]*slot)}
}

func (m *Memory) Lock(ctx context.Context, key string, _ time.Duration) (Unlock, error) {
	m.mu.Lock()
	s, ok := m.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	m.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, s)
		return nil, fmt.Errorf("lock %q: %w: %w", key, ErrNotAcquired, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-s.ch
			m.release(key, s)
		})
		return nil
	}, nil
}

func (m *Memory) release(key string, s *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
}

