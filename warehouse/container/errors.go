package container

import "errors"

// Errors returned by container operations.
var (
	// ErrEmptyContainer indicates a pop or peek on a container with no elements.
	ErrEmptyContainer = errors.New("container is empty")

	// ErrIndexOutOfRange indicates positional access beyond the current size.
	ErrIndexOutOfRange = errors.New("index out of range")
)
