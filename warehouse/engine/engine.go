package engine

import (
	"fmt"
	"iter"

	"github.com/wricardo/mcp-training/robots/warehouse/container"
)

// Engine provides the main interface for warehouse operations
type Engine interface {
	// Dimensions
	Rows() int
	Columns() int
	NumRobots() int

	// Grid access
	SetMapValue(x, y, value int) error
	GetMapValue(x, y int) (int, error)

	// Command queues
	AddGetBox(robotID, x, y, boxes, priority int) error
	AddDropBox(robotID, x, y, boxes, priority int) error
	Enqueue(robotID int, cmd Command, atFront bool) error

	// Execution and history
	Execute(robotID int) (Outcome, error)
	Undo() (Outcome, error)

	// Queries
	Commands(robotID int) (iter.Seq[Command], error)
	PendingCount(robotID int) (int, error)
	LastExecutedCommand() (AppliedCommand, bool)
	HowManyBoxes(robotID int) (int, error)
	HistoryLen() int
	TotalBoxes() int

	// Persistence
	Snapshot() *Snapshot
}

// Robot is a single warehouse robot and its pending work
type Robot struct {
	ID      int
	Carried int
	queue   *container.Deque[Command]
}

// WarehouseEngine implements the Engine interface. It is not safe for
// concurrent use; callers serialize access.
type WarehouseEngine struct {
	rows    int
	columns int
	grid    [][]int
	robots  []*Robot
	history *container.DynamicArray[AppliedCommand]
}

// NewWarehouse creates an empty warehouse with the given number of robots and
// a rows x columns grid of zero boxes
func NewWarehouse(robots, rows, columns int) (*WarehouseEngine, error) {
	if robots < MinRobots || robots > MaxRobots {
		return nil, fmt.Errorf("%w: robots must be between %d and %d, got %d",
			ErrInvalidDimensions, MinRobots, MaxRobots, robots)
	}
	if rows < MinGridSize || rows > MaxGridSize || columns < MinGridSize || columns > MaxGridSize {
		return nil, fmt.Errorf("%w: grid must be between %dx%d and %dx%d, got %dx%d",
			ErrInvalidDimensions, MinGridSize, MinGridSize, MaxGridSize, MaxGridSize, rows, columns)
	}

	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, columns)
	}

	e := &WarehouseEngine{
		rows:    rows,
		columns: columns,
		grid:    grid,
		robots:  make([]*Robot, robots),
		history: container.NewDynamicArray[AppliedCommand](),
	}
	for i := range e.robots {
		e.robots[i] = &Robot{ID: i, queue: container.NewDeque[Command]()}
	}

	return e, nil
}

// Rows returns the number of grid rows
func (e *WarehouseEngine) Rows() int {
	return e.rows
}

// Columns returns the number of grid columns
func (e *WarehouseEngine) Columns() int {
	return e.columns
}

// NumRobots returns the number of robots
func (e *WarehouseEngine) NumRobots() int {
	return len(e.robots)
}

// SetMapValue stores the box count of a cell
func (e *WarehouseEngine) SetMapValue(x, y, value int) error {
	if err := e.checkCell(x, y); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%w: cell (%d,%d) value %d", ErrNegativeBoxes, x, y, value)
	}
	e.grid[x][y] = value
	return nil
}

// GetMapValue returns the box count of a cell
func (e *WarehouseEngine) GetMapValue(x, y int) (int, error) {
	if err := e.checkCell(x, y); err != nil {
		return 0, err
	}
	return e.grid[x][y], nil
}

// AddGetBox queues a pick-up of boxes at (x,y) for the robot. priority 1
// appends to the back of the queue, anything else goes to the front.
func (e *WarehouseEngine) AddGetBox(robotID, x, y, boxes, priority int) error {
	return e.Enqueue(robotID, Command{Kind: Get, X: x, Y: y, Boxes: boxes}, InsertAtFront(priority))
}

// AddDropBox queues a put-down of boxes at (x,y) for the robot, with the same
// priority rule as AddGetBox.
func (e *WarehouseEngine) AddDropBox(robotID, x, y, boxes, priority int) error {
	return e.Enqueue(robotID, Command{Kind: Drop, X: x, Y: y, Boxes: boxes}, InsertAtFront(priority))
}

// Enqueue inserts cmd at the front or back of the robot's queue
func (e *WarehouseEngine) Enqueue(robotID int, cmd Command, atFront bool) error {
	robot, err := e.robot(robotID)
	if err != nil {
		return err
	}
	if !cmd.Kind.Valid() {
		return fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
	if err := e.checkCell(cmd.X, cmd.Y); err != nil {
		return err
	}

	if atFront {
		robot.queue.PushFront(cmd)
	} else {
		robot.queue.PushBack(cmd)
	}
	return nil
}

// Execute consumes the front command of the robot's queue, moves as many
// boxes as are available, and records the result in the history
func (e *WarehouseEngine) Execute(robotID int) (Outcome, error) {
	robot, err := e.robot(robotID)
	if err != nil {
		return "", err
	}
	if robot.queue.IsEmpty() {
		return OutcomeNoCommand, nil
	}

	// Validate before removing so a failure leaves the queue untouched
	cmd, err := robot.queue.PeekFront()
	if err != nil {
		return "", fmt.Errorf("execute robot %d: %w", robotID, err)
	}
	if err := e.checkCell(cmd.X, cmd.Y); err != nil {
		return "", fmt.Errorf("execute robot %d: %w", robotID, err)
	}
	if _, err := robot.queue.PopFront(); err != nil {
		return "", fmt.Errorf("execute robot %d: %w", robotID, err)
	}

	applied := e.transfer(robot, cmd.Kind, cmd.X, cmd.Y, cmd.Boxes)

	e.history.PushLast(AppliedCommand{
		RobotID:   robotID,
		Kind:      cmd.Kind,
		X:         cmd.X,
		Y:         cmd.Y,
		Boxes:     applied,
		Requested: cmd.Boxes,
	})

	return OutcomeApplied, nil
}

// Undo reverts the most recently executed command across all robots and puts
// the original command back at the front of its robot's queue
func (e *WarehouseEngine) Undo() (Outcome, error) {
	if e.history.IsEmpty() {
		return OutcomeNoHistory, nil
	}

	last, err := e.history.PopLast()
	if err != nil {
		return "", fmt.Errorf("undo: %w", err)
	}

	robot, err := e.robot(last.RobotID)
	if err != nil {
		return "", fmt.Errorf("undo: %w", err)
	}

	e.transfer(robot, last.Kind.Inverse(), last.X, last.Y, last.Boxes)
	robot.queue.PushFront(last.Command())

	return OutcomeUndone, nil
}

// Commands returns the robot's pending commands front to back. The sequence
// reads the live queue each time it is ranged over.
func (e *WarehouseEngine) Commands(robotID int) (iter.Seq[Command], error) {
	robot, err := e.robot(robotID)
	if err != nil {
		return nil, err
	}
	return robot.queue.All(), nil
}

// PendingCount returns the number of commands waiting in the robot's queue
func (e *WarehouseEngine) PendingCount(robotID int) (int, error) {
	robot, err := e.robot(robotID)
	if err != nil {
		return 0, err
	}
	return robot.queue.Len(), nil
}

// LastExecutedCommand returns the top of the history, or false if nothing has
// been executed
func (e *WarehouseEngine) LastExecutedCommand() (AppliedCommand, bool) {
	last, err := e.history.PeekLast()
	if err != nil {
		return AppliedCommand{}, false
	}
	return last, true
}

// HowManyBoxes returns the number of boxes the robot is carrying
func (e *WarehouseEngine) HowManyBoxes(robotID int) (int, error) {
	robot, err := e.robot(robotID)
	if err != nil {
		return 0, err
	}
	return robot.Carried, nil
}

// HistoryLen returns the number of commands that can be undone
func (e *WarehouseEngine) HistoryLen() int {
	return e.history.Len()
}

// TotalBoxes returns every box in the warehouse, on the grid or carried
func (e *WarehouseEngine) TotalBoxes() int {
	total := CountGridBoxes(e.grid)
	for _, r := range e.robots {
		total += r.Carried
	}
	return total
}

// robot returns the robot with the given id
func (e *WarehouseEngine) robot(id int) (*Robot, error) {
	if id < 0 || id >= len(e.robots) {
		return nil, fmt.Errorf("%w: %d (warehouse has %d robots)", ErrInvalidRobotID, id, len(e.robots))
	}
	return e.robots[id], nil
}

// checkCell verifies that (x,y) lies on the grid
func (e *WarehouseEngine) checkCell(x, y int) error {
	if x < 0 || x >= e.rows || y < 0 || y >= e.columns {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrIndexOutOfRange, x, y, e.rows, e.columns)
	}
	return nil
}
