package service_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/robots/warehouse/config"
	"github.com/wricardo/mcp-training/robots/warehouse/service"
	"github.com/wricardo/mcp-training/robots/warehouse/session"
)

// newManagedService wires the service to the real session and config
// managers so lookups go through the session manager's own locking
func newManagedService(t *testing.T) service.WarehouseService {
	t.Helper()

	dir := t.TempDir()
	layout := `{"name": "Concurrent", "robots": 2, "rows": 2, "columns": 2, "grid": [[3, 0], [0, 1]]}`
	if err := os.WriteFile(filepath.Join(dir, "default.json"), []byte(layout), 0644); err != nil {
		t.Fatalf("Failed to write layout: %v", err)
	}

	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	return service.NewWarehouseService(session.NewManager(), configs)
}

// Run with -race: every lookup rewrites the session's access time while
// other goroutines read it back into SessionInfo.
func TestWarehouseService_ConcurrentReads(t *testing.T) {
	svc := newManagedService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	id := info.ID

	const goroutines = 8
	const iterations = 200

	var wg sync.WaitGroup
	errs := make(chan error, goroutines*iterations)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				var err error
				switch (g + i) % 6 {
				case 0:
					var got *service.SessionInfo
					got, err = svc.GetSession(ctx, id)
					if err == nil && got.LastAccessedAt.IsZero() {
						t.Errorf("Expected access time to be set")
					}
				case 1:
					_, err = svc.ListSessions(ctx)
				case 2:
					_, err = svc.GetState(ctx, id)
				case 3:
					_, err = svc.GetCell(ctx, id, 0, 0)
				case 4:
					_, err = svc.PrintCommands(ctx, id, 0)
				default:
					_, err = svc.HowManyBoxes(ctx, id, 1)
				}
				if err != nil {
					errs <- err
				}
			}
		}(g)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error: %v", err)
	}
}

// Readers and writers interleaved: the box total never changes
func TestWarehouseService_ConcurrentReadWrite(t *testing.T) {
	svc := newManagedService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	id := info.ID
	total := info.State.TotalBoxes

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func(robot int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				svc.Enqueue(ctx, id, service.EnqueueRequest{RobotID: robot, Kind: "GET", X: 0, Y: 0, Boxes: 1})
				svc.Execute(ctx, id, robot)
				svc.Undo(ctx, id)
			}
		}(g % 2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				state, err := svc.GetState(ctx, id)
				if err != nil {
					t.Errorf("Failed to get state: %v", err)
					return
				}
				if state.TotalBoxes != total {
					t.Errorf("Expected %d boxes, got %d", total, state.TotalBoxes)
					return
				}
				if _, err := svc.GetSession(ctx, id); err != nil {
					t.Errorf("Failed to get session: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
