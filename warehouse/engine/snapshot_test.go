package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSnapshotRestore(t *testing.T) {
	w := newTestWarehouse(t, 2, 3, 3)
	mustSet(t, w, 0, 0, 6)
	mustSet(t, w, 2, 2, 1)
	_ = w.AddGetBox(0, 0, 0, 4, PriorityBack)
	_ = w.AddDropBox(0, 1, 2, 3, PriorityBack)
	_ = w.AddGetBox(1, 2, 2, 5, PriorityBack)
	mustExecute(t, w, 0, OutcomeApplied)
	mustExecute(t, w, 1, OutcomeApplied)

	snap := w.Snapshot()
	if snap.TotalBoxes != 7 {
		t.Errorf("Expected 7 boxes in snapshot, got %d", snap.TotalBoxes)
	}

	// Round trip through JSON as persistence does
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	restored, err := Restore(&decoded)
	if err != nil {
		t.Fatalf("Failed to restore: %v", err)
	}
	if !snapshotsEqual(snap, restored.Snapshot()) {
		t.Errorf("Expected identical state\nwant %+v\ngot  %+v", snap, restored.Snapshot())
	}

	// Restored history is usable
	for i := 0; i < 2; i++ {
		if outcome, err := restored.Undo(); err != nil || outcome != OutcomeUndone {
			t.Fatalf("Undo %d on restored engine: %s %v", i, outcome, err)
		}
	}
	if v := mustGet(t, restored, 0, 0); v != 6 {
		t.Errorf("Expected (0,0) back to 6, got %d", v)
	}
	if got := mustCommands(t, restored, 0); len(got) != 2 {
		t.Errorf("Expected robot 0 to have 2 pending commands, got %v", got)
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	w := newTestWarehouse(t, 1, 1, 1)
	mustSet(t, w, 0, 0, 2)
	snap := w.Snapshot()
	snap.Grid[0][0] = 99

	if v := mustGet(t, w, 0, 0); v != 2 {
		t.Errorf("Expected snapshot mutation not to leak into engine, got %d", v)
	}
	if snap.Robots[0].Queue == nil || snap.History == nil {
		t.Error("Expected empty slices rather than nil in snapshot")
	}
}

func TestRestore_Invalid(t *testing.T) {
	valid := func() *Snapshot {
		w := newTestWarehouse(t, 1, 2, 2)
		return w.Snapshot()
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
		target error
	}{
		{"no robots", func(s *Snapshot) { s.Robots = nil }, ErrInvalidDimensions},
		{"grid rows", func(s *Snapshot) { s.Grid = s.Grid[:1] }, ErrInvalidDimensions},
		{"grid columns", func(s *Snapshot) { s.Grid[0] = []int{1} }, ErrInvalidDimensions},
		{"negative cell", func(s *Snapshot) { s.Grid[0][0] = -1 }, ErrNegativeBoxes},
		{"negative carried", func(s *Snapshot) { s.Robots[0].Carried = -1 }, ErrNegativeBoxes},
		{"robot id", func(s *Snapshot) { s.Robots[0].ID = 3 }, ErrInvalidRobotID},
		{"queue off grid", func(s *Snapshot) {
			s.Robots[0].Queue = []Command{{Kind: Get, X: 5, Y: 0, Boxes: 1}}
		}, ErrIndexOutOfRange},
		{"history robot", func(s *Snapshot) {
			s.History = []AppliedCommand{{RobotID: 4, Kind: Get}}
		}, ErrInvalidRobotID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			if _, err := Restore(s); !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}

	if _, err := Restore(nil); err == nil {
		t.Error("Expected error for nil snapshot")
	}
}

func TestGridUtils(t *testing.T) {
	grid := [][]int{
		{0, 3, 1},
		{3, 0, 0},
	}
	if got := CountGridBoxes(grid); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	if got := NonEmptyCells(grid); got != 3 {
		t.Errorf("Expected 3 non-empty cells, got %d", got)
	}

	pos, n, ok := DensestCell(grid)
	if !ok || n != 3 || pos != (Position{X: 0, Y: 1}) {
		t.Errorf("Expected (0,1) with 3, got %v %d %v", pos, n, ok)
	}
	if _, _, ok := DensestCell([][]int{{0}}); ok {
		t.Error("Expected no densest cell in empty grid")
	}
}
