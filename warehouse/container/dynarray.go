package container

import "iter"

const (
	// DefaultCapacity is the starting capacity and the floor below which a
	// DynamicArray never shrinks.
	DefaultCapacity = 5

	// GrowthFactor multiplies the capacity when a push finds the array full.
	GrowthFactor = 2
)

// DynamicArray is a growable buffer that only supports push and pop at the
// tail. Capacity doubles when full and halves once less than half is in use,
// as long as the halved capacity stays at or above DefaultCapacity.
type DynamicArray[T any] struct {
	data []T
	size int
}

// NewDynamicArray creates an empty array with DefaultCapacity.
func NewDynamicArray[T any]() *DynamicArray[T] {
	return NewDynamicArrayWithCapacity[T](DefaultCapacity)
}

// NewDynamicArrayWithCapacity creates an empty array with the given initial
// capacity. A non-positive capacity falls back to DefaultCapacity.
func NewDynamicArrayWithCapacity[T any](capacity int) *DynamicArray[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &DynamicArray[T]{data: make([]T, capacity)}
}

// PushLast appends value, growing the buffer first if it is full.
func (a *DynamicArray[T]) PushLast(value T) {
	if a.size >= len(a.data) {
		newCapacity := len(a.data) * GrowthFactor
		if newCapacity == 0 {
			newCapacity = DefaultCapacity
		}
		a.resize(newCapacity)
	}

	a.data[a.size] = value
	a.size++
}

// PopLast removes and returns the tail element. The buffer shrinks to half
// its capacity when the remaining elements fit in less than half of it.
func (a *DynamicArray[T]) PopLast() (T, error) {
	var zero T
	if a.size == 0 {
		return zero, ErrEmptyContainer
	}

	a.size--
	value := a.data[a.size]
	a.data[a.size] = zero

	half := len(a.data) / 2
	if half >= DefaultCapacity && a.size < half {
		a.resize(half)
	}

	return value, nil
}

// PeekLast returns the tail element without removing it.
func (a *DynamicArray[T]) PeekLast() (T, error) {
	if a.size == 0 {
		var zero T
		return zero, ErrEmptyContainer
	}
	return a.data[a.size-1], nil
}

// Len returns the number of stored elements.
func (a *DynamicArray[T]) Len() int {
	return a.size
}

// Cap returns the capacity of the backing buffer.
func (a *DynamicArray[T]) Cap() int {
	return len(a.data)
}

// IsEmpty reports whether the array has no elements.
func (a *DynamicArray[T]) IsEmpty() bool {
	return a.size == 0
}

// All yields the elements from bottom (first pushed) to top.
func (a *DynamicArray[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(a.data[i]) {
				return
			}
		}
	}
}

// resize copies the live elements into a new buffer of the given capacity.
func (a *DynamicArray[T]) resize(capacity int) {
	data := make([]T, capacity)
	copy(data, a.data[:a.size])
	a.data = data
}
