package engine

import (
	"fmt"
	"slices"

	"github.com/wricardo/mcp-training/robots/warehouse/container"
)

// Snapshot returns a deep copy of the warehouse: grid, robots with their
// queues front to back, and the history bottom to top.
func (e *WarehouseEngine) Snapshot() *Snapshot {
	grid := make([][]int, e.rows)
	for x := range e.grid {
		grid[x] = slices.Clone(e.grid[x])
	}

	robots := make([]RobotState, len(e.robots))
	for i, r := range e.robots {
		robots[i] = RobotState{
			ID:      r.ID,
			Carried: r.Carried,
			Queue:   slices.Collect(r.queue.All()),
		}
		if robots[i].Queue == nil {
			robots[i].Queue = []Command{}
		}
	}

	history := slices.Collect(e.history.All())
	if history == nil {
		history = []AppliedCommand{}
	}

	return &Snapshot{
		Rows:       e.rows,
		Columns:    e.columns,
		Grid:       grid,
		Robots:     robots,
		History:    history,
		TotalBoxes: e.TotalBoxes(),
	}
}

// Restore rebuilds a warehouse from a snapshot
func Restore(s *Snapshot) (*WarehouseEngine, error) {
	if s == nil {
		return nil, fmt.Errorf("restore: snapshot is nil")
	}

	e, err := NewWarehouse(len(s.Robots), s.Rows, s.Columns)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	if len(s.Grid) != s.Rows {
		return nil, fmt.Errorf("restore: %w: grid has %d rows, want %d", ErrInvalidDimensions, len(s.Grid), s.Rows)
	}
	for x, row := range s.Grid {
		if len(row) != s.Columns {
			return nil, fmt.Errorf("restore: %w: grid row %d has %d columns, want %d",
				ErrInvalidDimensions, x, len(row), s.Columns)
		}
		for y, v := range row {
			if err := e.SetMapValue(x, y, v); err != nil {
				return nil, fmt.Errorf("restore: %w", err)
			}
		}
	}

	for i, rs := range s.Robots {
		if rs.ID != i {
			return nil, fmt.Errorf("restore: %w: robot at position %d has id %d", ErrInvalidRobotID, i, rs.ID)
		}
		if rs.Carried < 0 {
			return nil, fmt.Errorf("restore: %w: robot %d carries %d", ErrNegativeBoxes, i, rs.Carried)
		}
		e.robots[i].Carried = rs.Carried
		for _, cmd := range rs.Queue {
			if err := e.Enqueue(i, cmd, false); err != nil {
				return nil, fmt.Errorf("restore robot %d queue: %w", i, err)
			}
		}
	}

	history := container.NewDynamicArrayWithCapacity[AppliedCommand](len(s.History))
	for _, h := range s.History {
		if _, err := e.robot(h.RobotID); err != nil {
			return nil, fmt.Errorf("restore history: %w", err)
		}
		if err := e.checkCell(h.X, h.Y); err != nil {
			return nil, fmt.Errorf("restore history: %w", err)
		}
		if !h.Kind.Valid() || h.Boxes < 0 {
			return nil, fmt.Errorf("restore history: invalid entry %s", h)
		}
		history.PushLast(h)
	}
	e.history = history

	return e, nil
}
