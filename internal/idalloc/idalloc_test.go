package idalloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocatorMonotonic(t *testing.T) {
	var a Allocator
	require.Equal(t, uint32(0), a.NextID())
	require.Equal(t, uint32(1), a.NextID())
	require.Equal(t, uint32(2), a.NextID())
}

func TestAllocatorConcurrentUnique(t *testing.T) {
	var a Allocator
	const n = 1000
	ids := make([]uint32, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			ids[i] = a.NextID()
		}()
	}
	wg.Wait()

	seen := make(map[uint32]bool, n)
	for _, id := range ids {
		require.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
	}
}
