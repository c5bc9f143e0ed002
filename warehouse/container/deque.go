package container

import "iter"

// nilNode marks an absent link. Slot 0 of the arena is reserved so that the
// zero value of Deque needs no initialization.
const nilNode = 0

// keepArena is the largest arena capacity kept for reuse once a deque drains
const keepArena = 64

type node[T any] struct {
	value T
	prev  int
	next  int
}

// Deque is a double-ended queue. Nodes are stored in an arena and linked by
// index; removed slots are recycled through a free list. The arena does not
// shrink while elements remain. When the last element is popped it is
// truncated for reuse, or released if a burst grew it past keepArena slots.
type Deque[T any] struct {
	nodes []node[T]
	free  []int
	head  int
	tail  int
	size  int
}

// NewDeque creates an empty deque.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{}
}

// alloc returns the index of an unused node holding value.
func (d *Deque[T]) alloc(value T) int {
	if len(d.nodes) == 0 {
		d.nodes = append(d.nodes, node[T]{})
	}

	if n := len(d.free); n > 0 {
		idx := d.free[n-1]
		d.free = d.free[:n-1]
		d.nodes[idx] = node[T]{value: value}
		return idx
	}

	d.nodes = append(d.nodes, node[T]{value: value})
	return len(d.nodes) - 1
}

// release clears the slot so the arena does not retain the value.
func (d *Deque[T]) release(idx int) {
	d.nodes[idx] = node[T]{}
	d.free = append(d.free, idx)
}

// drained resets the arena of an empty deque
func (d *Deque[T]) drained() {
	if cap(d.nodes) > keepArena {
		d.nodes, d.free = nil, nil
		return
	}
	d.nodes, d.free = d.nodes[:0], d.free[:0]
}

// PushFront inserts value before the current front.
func (d *Deque[T]) PushFront(value T) {
	idx := d.alloc(value)

	if d.head == nilNode {
		d.tail = idx
	} else {
		d.nodes[idx].next = d.head
		d.nodes[d.head].prev = idx
	}

	d.head = idx
	d.size++
}

// PushBack inserts value after the current back.
func (d *Deque[T]) PushBack(value T) {
	idx := d.alloc(value)

	if d.tail == nilNode {
		d.head = idx
	} else {
		d.nodes[idx].prev = d.tail
		d.nodes[d.tail].next = idx
	}

	d.tail = idx
	d.size++
}

// PopFront removes and returns the front element.
func (d *Deque[T]) PopFront() (T, error) {
	if d.head == nilNode {
		var zero T
		return zero, ErrEmptyContainer
	}

	idx := d.head
	value := d.nodes[idx].value
	next := d.nodes[idx].next

	if next == nilNode {
		d.head, d.tail = nilNode, nilNode
	} else {
		d.nodes[next].prev = nilNode
		d.head = next
	}

	d.release(idx)
	d.size--
	if d.size == 0 {
		d.drained()
	}
	return value, nil
}

// PopBack removes and returns the back element.
func (d *Deque[T]) PopBack() (T, error) {
	if d.tail == nilNode {
		var zero T
		return zero, ErrEmptyContainer
	}

	idx := d.tail
	value := d.nodes[idx].value
	prev := d.nodes[idx].prev

	if prev == nilNode {
		d.head, d.tail = nilNode, nilNode
	} else {
		d.nodes[prev].next = nilNode
		d.tail = prev
	}

	d.release(idx)
	d.size--
	if d.size == 0 {
		d.drained()
	}
	return value, nil
}

// PeekFront returns the front element without removing it.
func (d *Deque[T]) PeekFront() (T, error) {
	if d.head == nilNode {
		var zero T
		return zero, ErrEmptyContainer
	}
	return d.nodes[d.head].value, nil
}

// PeekBack returns the back element without removing it.
func (d *Deque[T]) PeekBack() (T, error) {
	if d.tail == nilNode {
		var zero T
		return zero, ErrEmptyContainer
	}
	return d.nodes[d.tail].value, nil
}

// At returns the element at position i counted from the front.
func (d *Deque[T]) At(i int) (T, error) {
	if i < 0 || i >= d.size {
		var zero T
		return zero, ErrIndexOutOfRange
	}

	idx := d.head
	for ; i > 0; i-- {
		idx = d.nodes[idx].next
	}
	return d.nodes[idx].value, nil
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int {
	return d.size
}

// IsEmpty reports whether the deque has no elements.
func (d *Deque[T]) IsEmpty() bool {
	return d.size == 0
}

// All yields the elements front to back. Each iteration reads the live
// deque, so ranging again after a mutation reflects the new contents. The
// deque must not be mutated while an iteration is in progress.
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for idx := d.head; idx != nilNode; idx = d.nodes[idx].next {
			if !yield(d.nodes[idx].value) {
				return
			}
		}
	}
}

// Clear removes every element and releases the arena.
func (d *Deque[T]) Clear() {
	d.nodes = nil
	d.free = nil
	d.head, d.tail = nilNode, nilNode
	d.size = 0
}
