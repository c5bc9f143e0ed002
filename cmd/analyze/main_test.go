package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLayout(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeLayout(t, dir, "stocked.json", `{
		"name": "Stocked",
		"robots": 3,
		"rows": 2,
		"columns": 3,
		"grid": [[4, 0, 1], [0, 9, 0]]
	}`)

	report, err := analyzeLayout(path)
	if err != nil {
		t.Fatalf("Failed to analyze layout: %v", err)
	}

	if report.Name != "Stocked" {
		t.Errorf("Expected name 'Stocked', got '%s'", report.Name)
	}
	if report.TotalBoxes != 14 {
		t.Errorf("Expected 14 boxes, got %d", report.TotalBoxes)
	}
	if report.NonEmpty != 3 {
		t.Errorf("Expected 3 non-empty cells, got %d", report.NonEmpty)
	}
	if !report.HasBoxes || report.Densest.X != 1 || report.Densest.Y != 1 || report.DensestN != 9 {
		t.Errorf("Expected densest cell (1, 1) with 9, got (%d, %d) with %d",
			report.Densest.X, report.Densest.Y, report.DensestN)
	}
	if report.Fill() != 50 {
		t.Errorf("Expected fill 50, got %.1f", report.Fill())
	}
}

func TestAnalyzeLayout_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeLayout(t, dir, "empty.yaml", "name: Empty\nrobots: 2\nrows: 3\ncolumns: 3\n")

	report, err := analyzeLayout(path)
	if err != nil {
		t.Fatalf("Failed to analyze layout: %v", err)
	}
	if report.HasBoxes {
		t.Error("Expected an empty grid to have no boxes")
	}
	if report.TotalBoxes != 0 {
		t.Errorf("Expected 0 boxes, got %d", report.TotalBoxes)
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	if !strings.Contains(buf.String(), "WARNING: the grid holds no boxes") {
		t.Errorf("Expected empty grid warning, got:\n%s", buf.String())
	}
}

func TestAnalyzeLayout_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeLayout(t, dir, "bad.json", `{"name": "Bad", "robots": 0, "rows": 2, "columns": 2}`)

	if _, err := analyzeLayout(path); err == nil {
		t.Error("Expected error for layout without robots")
	}
	if _, err := analyzeLayout(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name   string
		report LayoutReport
		want   string
	}{
		{
			name:   "enough stocked cells",
			report: LayoutReport{Name: "A", Robots: 1, Rows: 1, Columns: 2, TotalBoxes: 3, NonEmpty: 1, DensestN: 3, HasBoxes: true},
			want:   "✅ Every robot can start on its own stocked cell",
		},
		{
			name:   "crowded",
			report: LayoutReport{Name: "B", Robots: 4, Rows: 2, Columns: 2, TotalBoxes: 2, NonEmpty: 1, DensestN: 2, HasBoxes: true},
			want:   "WARNING: 4 robots share 1 stocked cells",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printReport(&buf, tt.report)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestLayoutFiles(t *testing.T) {
	dir := t.TempDir()
	writeLayout(t, dir, "b.yaml", "")
	writeLayout(t, dir, "a.json", "")
	writeLayout(t, dir, "notes.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	files, err := layoutFiles(dir)
	if err != nil {
		t.Fatalf("Failed to list layouts: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 layout files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.yaml" {
		t.Errorf("Expected sorted files, got %v", files)
	}
}

func TestBundledLayouts(t *testing.T) {
	files, err := layoutFiles(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("Failed to list bundled layouts: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("Expected bundled layouts")
	}
	for _, file := range files {
		if _, err := analyzeLayout(file); err != nil {
			t.Errorf("Bundled layout %s failed: %v", filepath.Base(file), err)
		}
	}
}
