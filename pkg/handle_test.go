package assetstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleCloneIncrementsStrongCount(t *testing.T) {
	h := newHandle[int](1)
	require.True(t, h.IsUnique())

	clone := h.Clone()
	require.False(t, h.IsUnique())
	require.False(t, clone.IsUnique())
	require.Equal(t, h.ID(), clone.ID())
}

func TestHandleReleaseRestoresUniqueness(t *testing.T) {
	h := newHandle[int](1)
	clone := h.Clone()
	clone.Release()
	require.True(t, h.IsUnique())
}

func TestHandleReleaseUnderflowPanics(t *testing.T) {
	h := newHandle[int](1)
	h.Release()
	require.Panics(t, func() { h.Release() })
}

func TestHandleEqualityIsCellIdentity(t *testing.T) {
	h1 := newHandle[int](1)
	h2 := newHandle[int](1) // same numeric id, different allocation

	require.False(t, h1 == h2)
	require.True(t, h1 == h1.Clone())
}

func TestWeakHandleUpgradeSucceedsWhileStrongAlive(t *testing.T) {
	h := newHandle[int](7)
	weak := h.Downgrade()

	upgraded, ok := weak.Upgrade()
	require.True(t, ok)
	require.Equal(t, uint32(7), upgraded.ID())
	require.False(t, weak.IsDead())
}

func TestWeakHandleUpgradeFailsAfterAllStrongReleased(t *testing.T) {
	h := newHandle[int](7)
	weak := h.Downgrade()
	h.Release()

	require.True(t, weak.IsDead())
	_, ok := weak.Upgrade()
	require.False(t, ok)
}

func TestWeakHandleOfZeroValueIsDead(t *testing.T) {
	var weak WeakHandle[int]
	require.True(t, weak.IsDead())
	_, ok := weak.Upgrade()
	require.False(t, ok)
}
