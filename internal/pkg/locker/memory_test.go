package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SerializesSameKey(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for range 50 {
		wg.Go(func() {
			unlock, err := l.Lock(ctx, "identity:reset:a@x.com", time.Second)
			require.NoError(t, err)
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
			require.NoError(t, unlock(ctx))
		})
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestMemory_ContextEnds(t *testing.T) {
	l := NewMemory()

	unlock, err := l.Lock(context.Background(), "k", time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k", time.Second)
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = l.Lock(context.Background(), "other", time.Second)
	assert.NoError(t, err)

	require.NoError(t, unlock(context.Background()))
	require.NoError(t, unlock(context.Background()))

	again, err := l.Lock(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.NoError(t, again(context.Background()))
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

func TestMemory_DropsIdleKeys(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		unlock, err := l.Lock(ctx, "identity:reset:"+email, time.Second)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
	}
	assert.Zero(t, l.size())

	held, err := l.Lock(ctx, "k", time.Second)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(short, "k", time.Second)
	require.ErrorIs(t, err, ErrNotAcquired)
	assert.Equal(t, 1, l.size(), "held key stays after a waiter gives up")

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			unlock, err := l.Lock(ctx, "k", time.Second)
			assert.NoError(t, err)
			assert.NoError(t, unlock(ctx))
		})
	}
	require.NoError(t, held(ctx))
	wg.Wait()

	assert.Zero(t, l.size())
}
