package service

import (
	"time"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/script"
)

// SessionInfo provides information about a warehouse session
type SessionInfo struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	State          *engine.Snapshot     `json:"state"`
	Config         *engine.LayoutConfig `json:"config"`
}

// CellResult reports the box count of a single cell
type CellResult struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Boxes int `json:"boxes"`
}

// EnqueueRequest describes a command to add to a robot's queue
type EnqueueRequest struct {
	RobotID int                `json:"robot_id"`
	Kind    engine.CommandKind `json:"kind"`
	X       int                `json:"x"`
	Y       int                `json:"y"`
	Boxes   int                `json:"boxes"`
	AtFront bool               `json:"at_front"`
}

// EnqueueResult confirms an enqueued command
type EnqueueResult struct {
	RobotID int            `json:"robot_id"`
	Command engine.Command `json:"command"`
	AtFront bool           `json:"at_front"`
	Pending int            `json:"pending"`
}

// ActionResult contains the result of Execute or Undo
type ActionResult struct {
	Outcome engine.Outcome         `json:"outcome"`
	Message string                 `json:"message"`
	Command *engine.AppliedCommand `json:"command,omitempty"`
	State   *engine.Snapshot       `json:"state"`
}

// CommandsResult lists a robot's pending commands
type CommandsResult struct {
	RobotID  int              `json:"robot_id"`
	Commands []engine.Command `json:"commands"`
	Text     string           `json:"text"`
}

// LastExecutedResult reports the top of the history
type LastExecutedResult struct {
	Found   bool                   `json:"found"`
	Command *engine.AppliedCommand `json:"command,omitempty"`
	Text    string                 `json:"text"`
}

// BoxesResult reports how many boxes a robot carries
type BoxesResult struct {
	RobotID int    `json:"robot_id"`
	Boxes   int    `json:"boxes"`
	Text    string `json:"text"`
}

// ScriptResult contains the report of a command script run
type ScriptResult struct {
	Output string           `json:"output"`
	Stats  script.Stats     `json:"stats"`
	Error  string           `json:"error,omitempty"`
	State  *engine.Snapshot `json:"state"`
}

// ConfigInfo provides information about a warehouse layout
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	Robots      int    `json:"robots"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	TotalBoxes  int    `json:"total_boxes"`
}
