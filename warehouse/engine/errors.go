package engine

import (
	"errors"

	"github.com/wricardo/mcp-training/robots/warehouse/container"
)

// Errors returned by engine operations.
var (
	// ErrInvalidRobotID indicates a robot id outside 0..robots-1.
	ErrInvalidRobotID = errors.New("invalid robot id")

	// ErrIndexOutOfRange indicates a cell outside the grid. It is the same
	// value the containers return for positional access.
	ErrIndexOutOfRange = container.ErrIndexOutOfRange

	// ErrEmptyContainer is surfaced when a container is unexpectedly empty.
	ErrEmptyContainer = container.ErrEmptyContainer

	// ErrNegativeBoxes indicates an attempt to store a negative box count.
	ErrNegativeBoxes = errors.New("box count cannot be negative")

	// ErrInvalidDimensions indicates a robot count or grid size out of bounds.
	ErrInvalidDimensions = errors.New("invalid warehouse dimensions")
)
