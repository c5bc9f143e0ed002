// Package engine implements the warehouse model: a grid of box counts and a
// fixed set of robots, each with a deque of pending GET/DROP commands.
//
// Executing a robot's front command moves boxes between a cell and the robot.
// The amount is clamped to what the source holds, so cells and robots never
// go negative and the total number of boxes never changes. Every execution is
// pushed onto a single global history; Undo pops the newest entry, reverses
// the exact amount that was moved, and puts the original command back at the
// front of its robot's queue.
//
// Usage:
//
//	w, err := engine.NewWarehouse(2, 3, 3)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_ = w.SetMapValue(1, 1, 20)
//	_ = w.AddGetBox(0, 1, 1, 10, engine.PriorityBack)
//
//	if _, err := w.Execute(0); err != nil {
//		log.Fatal(err)
//	}
//	boxes, _ := w.HowManyBoxes(0) // 10
//
// Layouts can also be loaded from JSON or YAML with LoadLayoutConfig and
// turned into an engine with NewEngine. Snapshot and Restore round-trip the
// complete state for persistence.
package engine
