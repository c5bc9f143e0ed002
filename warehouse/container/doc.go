// Package container provides the two generic containers the warehouse engine
// is built on.
//
// Deque is a double-ended queue backed by an arena of index-linked nodes.
// Insertion and removal at either end are O(1); positional access walks from
// the front and is O(n). Robots use one Deque each as their command queue.
//
// DynamicArray is a tail-only growable buffer used as a LIFO stack. Its
// capacity policy is explicit rather than left to append: it doubles when
// full and halves when less than half used, never shrinking below
// DefaultCapacity. The warehouse keeps a single DynamicArray as its undo
// history.
//
// Usage:
//
//	var q container.Deque[string]
//	q.PushBack("b")
//	q.PushFront("a")
//	for v := range q.All() {
//		fmt.Println(v) // a, b
//	}
//
//	stack := container.NewDynamicArray[int]()
//	stack.PushLast(1)
//	top, err := stack.PopLast()
//
// Errors:
//
// Popping or peeking an empty container returns ErrEmptyContainer, and At
// returns ErrIndexOutOfRange for positions outside [0, Len()). Containers are
// not safe for concurrent use.
package container
