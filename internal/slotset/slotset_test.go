package slotset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDenseInsertGet(t *testing.T) {
	var d Dense[string]
	d.Insert(3, "three")

	slot := d.Get(3)
	require.NotNil(t, slot)
	require.Equal(t, "three", slot.Asset)
	require.Equal(t, uint32(0), slot.Version)
}

func TestDenseGetOutOfRange(t *testing.T) {
	var d Dense[string]
	require.Nil(t, d.Get(10))
}

func TestDenseRemoveReturnsPriorValue(t *testing.T) {
	var d Dense[string]
	d.Insert(2, "two")

	removed := d.Remove(2)
	require.Equal(t, "two", removed)

	slot := d.Get(2)
	require.NotNil(t, slot)
	require.Equal(t, "", slot.Asset)
}

func TestDenseRemoveOutOfRange(t *testing.T) {
	var d Dense[string]
	require.Equal(t, "", d.Remove(99))
}

func TestDenseClear(t *testing.T) {
	var d Dense[int]
	d.Insert(0, 1)
	d.Insert(5, 6)
	d.Clear()

	require.Equal(t, 0, d.Get(0).Asset)
	require.Equal(t, 0, d.Get(5).Asset)
}
