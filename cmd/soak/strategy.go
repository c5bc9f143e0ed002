package main

import (
	"math/rand/v2"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

// Action is the kind of step a strategy asks for
type Action int

const (
	ActionEnqueue Action = iota
	ActionExecute
	ActionUndo
)

func (a Action) String() string {
	switch a {
	case ActionEnqueue:
		return "enqueue"
	case ActionExecute:
		return "execute"
	case ActionUndo:
		return "undo"
	}
	return "unknown"
}

// Step is one request the soak loop sends
type Step struct {
	Action  Action
	RobotID int
	Command engine.Command
	AtFront bool
}

// RandomStrategy picks steps from a seeded source so a failing run can be
// replayed with the same -seed. Requests are often larger than what a cell
// or robot holds to exercise clamping.
type RandomStrategy struct {
	rng     *rand.Rand
	robots  int
	rows    int
	columns int
	maxAsk  int
}

func NewRandomStrategy(seed uint64, state *engine.Snapshot) *RandomStrategy {
	return &RandomStrategy{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		robots:  len(state.Robots),
		rows:    state.Rows,
		columns: state.Columns,
		maxAsk:  max(state.TotalBoxes, 3),
	}
}

// NextStep returns the next request. Roughly half the steps enqueue, a third
// execute and the rest undo.
func (s *RandomStrategy) NextStep() Step {
	robotID := s.rng.IntN(s.robots)

	switch roll := s.rng.IntN(6); {
	case roll < 3:
		kind := engine.Get
		if s.rng.IntN(2) == 0 {
			kind = engine.Drop
		}
		return Step{
			Action:  ActionEnqueue,
			RobotID: robotID,
			Command: engine.Command{
				Kind:  kind,
				X:     s.rng.IntN(s.rows),
				Y:     s.rng.IntN(s.columns),
				Boxes: s.rng.IntN(s.maxAsk + 1),
			},
			AtFront: s.rng.IntN(4) == 0,
		}
	case roll < 5:
		return Step{Action: ActionExecute, RobotID: robotID}
	default:
		return Step{Action: ActionUndo}
	}
}
