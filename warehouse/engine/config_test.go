package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createValidLayout() *LayoutConfig {
	return &LayoutConfig{
		Name:        "test",
		Description: "A valid test layout",
		Robots:      2,
		Rows:        2,
		Columns:     3,
		Grid: [][]int{
			{1, 0, 2},
			{0, 5, 0},
		},
	}
}

func TestValidateLayoutConfig_Valid(t *testing.T) {
	if err := ValidateLayoutConfig(createValidLayout()); err != nil {
		t.Errorf("Expected valid layout, got error: %v", err)
	}

	config := createValidLayout()
	config.Grid = nil
	if err := ValidateLayoutConfig(config); err != nil {
		t.Errorf("Expected layout without grid to be valid, got: %v", err)
	}
}

func TestValidateLayoutConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LayoutConfig)
		want   string
	}{
		{"missing name", func(c *LayoutConfig) { c.Name = "" }, "name is required"},
		{"no robots", func(c *LayoutConfig) { c.Robots = 0 }, "robots must be between"},
		{"zero rows", func(c *LayoutConfig) { c.Rows = 0 }, "rows must be between"},
		{"too many columns", func(c *LayoutConfig) { c.Columns = MaxGridSize + 1 }, "columns must be between"},
		{"grid row count", func(c *LayoutConfig) { c.Grid = c.Grid[:1] }, "grid must have 2 rows"},
		{"grid column count", func(c *LayoutConfig) { c.Grid[1] = []int{1} }, "grid row 1 must have 3 columns"},
		{"negative cell", func(c *LayoutConfig) { c.Grid[0][2] = -4 }, "negative box count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidLayout()
			tt.mutate(config)
			err := ValidateLayoutConfig(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if err := ValidateLayoutConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestParseLayoutConfig(t *testing.T) {
	jsonData := `{"name":"j","description":"json","robots":1,"rows":1,"columns":2,"grid":[[3,4]]}`
	config, err := ParseLayoutConfig([]byte(jsonData), "json")
	if err != nil {
		t.Fatalf("Failed to parse json layout: %v", err)
	}
	if config.Name != "j" || config.Grid[0][1] != 4 {
		t.Errorf("Unexpected json layout: %+v", config)
	}

	yamlData := `
name: y
description: yaml
robots: 2
rows: 2
columns: 1
grid:
  - [7]
  - [0]
`
	config, err = ParseLayoutConfig([]byte(yamlData), "yaml")
	if err != nil {
		t.Fatalf("Failed to parse yaml layout: %v", err)
	}
	if config.Robots != 2 || config.Grid[0][0] != 7 {
		t.Errorf("Unexpected yaml layout: %+v", config)
	}

	if _, err := ParseLayoutConfig([]byte(jsonData), "toml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if _, err := ParseLayoutConfig([]byte("{"), "json"); err == nil {
		t.Error("Expected error for malformed json")
	}
}

func TestLoadLayoutConfig(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "small.json")
	if err := os.WriteFile(jsonPath, []byte(`{"name":"small","robots":1,"rows":1,"columns":1}`), 0644); err != nil {
		t.Fatalf("Failed to write layout: %v", err)
	}
	yamlPath := filepath.Join(dir, "small.yml")
	if err := os.WriteFile(yamlPath, []byte("name: small\nrobots: 3\nrows: 2\ncolumns: 2\n"), 0644); err != nil {
		t.Fatalf("Failed to write layout: %v", err)
	}

	config, err := LoadLayoutConfig(jsonPath)
	if err != nil {
		t.Fatalf("Failed to load json layout: %v", err)
	}
	if config.Robots != 1 {
		t.Errorf("Expected 1 robot, got %d", config.Robots)
	}

	config, err = LoadLayoutConfig(yamlPath)
	if err != nil {
		t.Fatalf("Failed to load yaml layout: %v", err)
	}
	if config.Robots != 3 {
		t.Errorf("Expected 3 robots, got %d", config.Robots)
	}

	if _, err := LoadLayoutConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewEngine(t *testing.T) {
	config := createValidLayout()
	w, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if w.NumRobots() != 2 || w.Rows() != 2 || w.Columns() != 3 {
		t.Errorf("Unexpected dimensions: %d robots %dx%d", w.NumRobots(), w.Rows(), w.Columns())
	}
	if w.TotalBoxes() != 8 {
		t.Errorf("Expected 8 boxes, got %d", w.TotalBoxes())
	}

	// The engine owns its grid
	config.Grid[1][1] = 100
	if v, _ := w.GetMapValue(1, 1); v != 5 {
		t.Errorf("Expected engine grid unaffected by config changes, got %d", v)
	}

	config.Robots = 0
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]string{
		"a.json":      "json",
		"a.YAML":      "yaml",
		"dir/b.yml":   "yaml",
		"noextension": "json",
	}
	for path, want := range cases {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
