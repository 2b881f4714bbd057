package uid

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflake_UniqueAcrossGoroutines(t *testing.T) {
	sf, err := NewSnowflake(7)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{})
		wg   sync.WaitGroup
	)
	for range 8 {
		wg.Go(func() {
			for range 200 {
				id := sf.Generate()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Len(t, seen, 1600)
}

func TestSnowflake_InvalidNode(t *testing.T) {
	_, err := NewSnowflake(4096)
	assert.Error(t, err)
}

func TestUUID_Version7(t *testing.T) {
	var gen StringID = NewUUID()

	id, err := uuid.Parse(gen.Generate())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.NotEqual(t, gen.Generate(), gen.Generate())
}
