// Command soak drives a running warehouse server with random commands and
// checks after every step that no box was created or lost. It finishes by
// undoing the whole history and comparing the grid with the starting one.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

// Options control a soak run
type Options struct {
	ConfigID string
	Steps    int
	Seed     uint64
	Delay    time.Duration
	Verbose  bool
}

// Report summarizes a finished run
type Report struct {
	SessionID string
	Steps     int
	Enqueued  int
	Applied   int
	NoCommand int
	Undone    int
	NoHistory int
	Unwound   int
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Warehouse server URL")
	configID := flag.String("config", "", "Layout id for the session (server default when empty)")
	steps := flag.Int("steps", 1000, "Number of random steps to send")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed, reuse it to replay a run")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between steps in milliseconds (0 = no delay)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Connecting to warehouse server at %s (seed %d)", *serverURL, *seed)
	report, err := soak(ctx, NewClient(*serverURL), Options{
		ConfigID: *configID,
		Steps:    *steps,
		Seed:     *seed,
		Delay:    time.Duration(*delayMs) * time.Millisecond,
		Verbose:  *verbose,
	})
	if err != nil {
		log.Printf("❌ %v", err)
		if report.SessionID != "" {
			log.Printf("Session: %s", report.SessionID)
		}
		os.Exit(1)
	}

	log.Printf("✅ %d steps: enqueued=%d applied=%d no_command=%d undone=%d no_history=%d unwound=%d",
		report.Steps, report.Enqueued, report.Applied, report.NoCommand, report.Undone, report.NoHistory, report.Unwound)
	log.Printf("Session: %s", report.SessionID)
}

func soak(ctx context.Context, client *Client, opts Options) (Report, error) {
	var report Report

	session, err := client.CreateSession(ctx, opts.ConfigID)
	if err != nil {
		return report, err
	}
	report.SessionID = session.ID
	initial := session.State
	log.Printf("✨ Session created: %s - Grid: %dx%d, Robots: %d, Boxes: %d",
		session.ID, initial.Rows, initial.Columns, len(initial.Robots), initial.TotalBoxes)

	strategy := NewRandomStrategy(opts.Seed, initial)

	for i := 0; i < opts.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		step := strategy.NextStep()
		state, err := applyStep(ctx, client, step, &report)
		if err != nil {
			return report, fmt.Errorf("step %d (%s robot %d): %w", i, step.Action, step.RobotID, err)
		}
		if err := checkConservation(initial.TotalBoxes, state); err != nil {
			return report, fmt.Errorf("step %d (%s robot %d): %w", i, step.Action, step.RobotID, err)
		}
		report.Steps++

		if opts.Verbose && i%100 == 0 {
			log.Printf("Step %d: history=%d carried=%d", i, len(state.History), carried(state))
		}
		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	}

	// Every executed command is still in history, so undoing all of it must
	// restore the starting grid with empty hands.
	for {
		result, err := client.Undo(ctx)
		if err != nil {
			return report, err
		}
		if result.Outcome == engine.OutcomeNoHistory {
			break
		}
		report.Unwound++
	}

	final, err := client.GetState(ctx)
	if err != nil {
		return report, err
	}
	if err := checkRestored(initial, final); err != nil {
		return report, err
	}

	return report, nil
}

// applyStep sends one step and returns the warehouse state after it
func applyStep(ctx context.Context, client *Client, step Step, report *Report) (*engine.Snapshot, error) {
	switch step.Action {
	case ActionEnqueue:
		if err := client.Enqueue(ctx, step.RobotID, step.Command, step.AtFront); err != nil {
			return nil, err
		}
		report.Enqueued++
		return client.GetState(ctx)

	case ActionExecute:
		result, err := client.Execute(ctx, step.RobotID)
		if err != nil {
			return nil, err
		}
		if result.Outcome == engine.OutcomeApplied {
			report.Applied++
			if c := result.Command; c.Boxes > c.Requested {
				return nil, fmt.Errorf("moved %d boxes but only %d were requested", c.Boxes, c.Requested)
			}
		} else {
			report.NoCommand++
		}
		return result.State, nil

	default:
		result, err := client.Undo(ctx)
		if err != nil {
			return nil, err
		}
		if result.Outcome == engine.OutcomeUndone {
			report.Undone++
		} else {
			report.NoHistory++
		}
		return result.State, nil
	}
}

func carried(state *engine.Snapshot) int {
	total := 0
	for _, r := range state.Robots {
		total += r.Carried
	}
	return total
}

// checkConservation verifies the box count never changes and no cell or
// robot goes negative
func checkConservation(want int, state *engine.Snapshot) error {
	if state == nil {
		return fmt.Errorf("no state returned")
	}

	for x, row := range state.Grid {
		for y, v := range row {
			if v < 0 {
				return fmt.Errorf("cell (%d,%d) holds %d boxes", x, y, v)
			}
		}
	}
	for _, r := range state.Robots {
		if r.Carried < 0 {
			return fmt.Errorf("robot %d carries %d boxes", r.ID, r.Carried)
		}
	}

	got := engine.CountGridBoxes(state.Grid) + carried(state)
	if got != want || state.TotalBoxes != want {
		return fmt.Errorf("box count drifted: started with %d, grid+carried=%d, reported=%d", want, got, state.TotalBoxes)
	}
	return nil
}

// checkRestored compares a fully undone warehouse with its starting state
func checkRestored(initial, final *engine.Snapshot) error {
	if len(final.History) != 0 {
		return fmt.Errorf("history still holds %d commands", len(final.History))
	}
	if n := carried(final); n != 0 {
		return fmt.Errorf("robots still carry %d boxes after undoing everything", n)
	}
	sameRow := func(a, b []int) bool { return slices.Equal(a, b) }
	if !slices.EqualFunc(initial.Grid, final.Grid, sameRow) {
		return fmt.Errorf("grid differs from the starting grid after undoing everything")
	}
	return nil
}
