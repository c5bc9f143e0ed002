package engine

import "fmt"

// CommandKind tags a robot command as a pick-up or a put-down
type CommandKind string

const (
	Get  CommandKind = "GET"
	Drop CommandKind = "DROP"

	// PriorityBack is the priority flag that appends a command to the back of
	// a robot's queue. Any other value inserts at the front.
	PriorityBack = 1

	// Validation constants
	MinRobots   = 1
	MaxRobots   = 1024
	MinGridSize = 1
	MaxGridSize = 1024
)

// Valid reports whether k is one of the known kinds
func (k CommandKind) Valid() bool {
	return k == Get || k == Drop
}

// Inverse returns the kind that undoes k
func (k CommandKind) Inverse() CommandKind {
	if k == Get {
		return Drop
	}
	return Get
}

// ParseCommandKind maps the textual kind back to a CommandKind
func ParseCommandKind(s string) (CommandKind, error) {
	kind := CommandKind(s)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown command kind %q", s)
	}
	return kind, nil
}

// InsertAtFront reports whether a command enqueued with the given priority
// flag goes to the front of the queue.
func InsertAtFront(priority int) bool {
	return priority != PriorityBack
}

// Position represents x,y coordinates; X is the row and Y the column
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Command is a pending GET or DROP sitting in a robot's queue
type Command struct {
	Kind  CommandKind `json:"kind" yaml:"kind"`
	X     int         `json:"x" yaml:"x"`
	Y     int         `json:"y" yaml:"y"`
	Boxes int         `json:"boxes" yaml:"boxes"`
}

// String renders the command as "KIND x y boxes"
func (c Command) String() string {
	return fmt.Sprintf("%s %d %d %d", c.Kind, c.X, c.Y, c.Boxes)
}

// AppliedCommand is a history entry created by Execute. Boxes holds the
// clamped amount actually moved; Requested keeps the original request so the
// command can be re-queued unchanged on undo.
type AppliedCommand struct {
	RobotID   int         `json:"robot_id" yaml:"robot_id"`
	Kind      CommandKind `json:"kind" yaml:"kind"`
	X         int         `json:"x" yaml:"x"`
	Y         int         `json:"y" yaml:"y"`
	Boxes     int         `json:"boxes" yaml:"boxes"`
	Requested int         `json:"requested" yaml:"requested"`
}

// Command returns the pending command this entry was executed from
func (a AppliedCommand) Command() Command {
	return Command{Kind: a.Kind, X: a.X, Y: a.Y, Boxes: a.Requested}
}

// String renders the entry as "robot: KIND x y applied"
func (a AppliedCommand) String() string {
	return fmt.Sprintf("%d: %s %d %d %d", a.RobotID, a.Kind, a.X, a.Y, a.Boxes)
}

// Outcome is the non-error result of Execute and Undo
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeNoCommand Outcome = "no_command"
	OutcomeUndone    Outcome = "undone"
	OutcomeNoHistory Outcome = "no_history"
)

// RobotState is the serializable view of a robot
type RobotState struct {
	ID      int       `json:"id"`
	Carried int       `json:"carried"`
	Queue   []Command `json:"queue"`
}

// Snapshot is a complete, serializable copy of a warehouse
type Snapshot struct {
	Rows       int              `json:"rows"`
	Columns    int              `json:"columns"`
	Grid       [][]int          `json:"grid"`
	Robots     []RobotState     `json:"robots"`
	History    []AppliedCommand `json:"history"`
	TotalBoxes int              `json:"total_boxes"`
}
