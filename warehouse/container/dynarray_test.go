package container

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDynamicArray_Defaults(t *testing.T) {
	a := NewDynamicArray[int]()

	require.True(t, a.IsEmpty())
	require.Equal(t, DefaultCapacity, a.Cap())
	require.Equal(t, 5, DefaultCapacity)
	require.Equal(t, 2, GrowthFactor)

	_, err := a.PopLast()
	require.ErrorIs(t, err, ErrEmptyContainer)
	_, err = a.PeekLast()
	require.ErrorIs(t, err, ErrEmptyContainer)
}

func TestDynamicArray_ZeroValueGrows(t *testing.T) {
	var a DynamicArray[string]
	a.PushLast("x")

	require.Equal(t, 1, a.Len())
	require.Equal(t, DefaultCapacity, a.Cap())
}

func TestDynamicArray_IsLIFO(t *testing.T) {
	a := NewDynamicArray[int]()
	for i := 0; i < 12; i++ {
		a.PushLast(i)
	}

	for want := 11; want >= 0; want-- {
		top, err := a.PeekLast()
		require.NoError(t, err)
		require.Equal(t, want, top)

		got, err := a.PopLast()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.True(t, a.IsEmpty())
}

func TestDynamicArray_GrowthDoubles(t *testing.T) {
	a := NewDynamicArray[int]()
	wantCaps := []int{5, 5, 5, 5, 5, 10, 10, 10, 10, 10, 20}

	for i, want := range wantCaps {
		a.PushLast(i)
		require.Equal(t, want, a.Cap(), "after push %d", i+1)
	}
}

func TestDynamicArray_ShrinkHalvesWithFloor(t *testing.T) {
	a := NewDynamicArray[int]()
	for i := 0; i < 11; i++ {
		a.PushLast(i)
	}
	require.Equal(t, 20, a.Cap())

	// size after pop -> expected capacity
	steps := []struct {
		size int
		cap  int
	}{
		{10, 20},
		{9, 10},
		{8, 10},
		{7, 10},
		{6, 10},
		{5, 10},
		{4, 5},
		{3, 5},
		{2, 5},
		{1, 5},
		{0, 5},
	}

	for _, step := range steps {
		_, err := a.PopLast()
		require.NoError(t, err)
		require.Equal(t, step.size, a.Len())
		require.Equal(t, step.cap, a.Cap(), "at size %d", step.size)
	}
}

func TestDynamicArray_ShrinkKeepsContents(t *testing.T) {
	a := NewDynamicArray[int]()
	for i := 0; i < 20; i++ {
		a.PushLast(i)
	}
	for i := 0; i < 12; i++ {
		_, err := a.PopLast()
		require.NoError(t, err)
	}

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, slices.Collect(a.All()))
}

func TestDynamicArray_InitialCapacity(t *testing.T) {
	a := NewDynamicArrayWithCapacity[int](2)
	require.Equal(t, 2, a.Cap())

	a.PushLast(1)
	a.PushLast(2)
	a.PushLast(3)
	require.Equal(t, 4, a.Cap())

	// Halving 4 would go below the default floor.
	_, err := a.PopLast()
	require.NoError(t, err)
	_, err = a.PopLast()
	require.NoError(t, err)
	require.Equal(t, 4, a.Cap())

	require.Equal(t, DefaultCapacity, NewDynamicArrayWithCapacity[int](0).Cap())
}

func TestDynamicArray_AllBottomToTop(t *testing.T) {
	a := NewDynamicArray[string]()
	a.PushLast("first")
	a.PushLast("second")
	a.PushLast("third")

	require.Equal(t, []string{"first", "second", "third"}, slices.Collect(a.All()))
}
