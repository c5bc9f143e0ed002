package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LayoutConfig describes a warehouse to build: robot count, grid dimensions
// and optional initial box counts. Grid, when present, is indexed [x][y].
type LayoutConfig struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Robots      int     `json:"robots" yaml:"robots"`
	Rows        int     `json:"rows" yaml:"rows"`
	Columns     int     `json:"columns" yaml:"columns"`
	Grid        [][]int `json:"grid,omitempty" yaml:"grid,omitempty"`
}

// ValidateLayoutConfig checks a layout for correctness
func ValidateLayoutConfig(config *LayoutConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.Robots < MinRobots || config.Robots > MaxRobots {
		return fmt.Errorf("config validation: robots must be between %d and %d, got %d", MinRobots, MaxRobots, config.Robots)
	}
	if config.Rows < MinGridSize || config.Rows > MaxGridSize {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Rows)
	}
	if config.Columns < MinGridSize || config.Columns > MaxGridSize {
		return fmt.Errorf("config validation: columns must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Columns)
	}

	if len(config.Grid) == 0 {
		return nil
	}
	if len(config.Grid) != config.Rows {
		return fmt.Errorf("config validation: grid must have %d rows, got %d", config.Rows, len(config.Grid))
	}
	for x, row := range config.Grid {
		if len(row) != config.Columns {
			return fmt.Errorf("config validation: grid row %d must have %d columns, got %d", x, config.Columns, len(row))
		}
		for y, v := range row {
			if v < 0 {
				return fmt.Errorf("config validation: cell (%d,%d) has negative box count %d", x, y, v)
			}
		}
	}

	return nil
}

// ParseLayoutConfig decodes a layout from data. format is "json" or "yaml".
func ParseLayoutConfig(data []byte, format string) (*LayoutConfig, error) {
	var config LayoutConfig

	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse yaml layout: %w", err)
		}
	case "json", "":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse json layout: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q", format)
	}

	if err := ValidateLayoutConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadLayoutConfig loads a layout from a .json, .yaml or .yml file
func LoadLayoutConfig(filename string) (*LayoutConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseLayoutConfig(data, FormatFromPath(filename))
}

// FormatFromPath returns the layout format implied by a file extension
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// NewEngine creates a warehouse from a layout
func NewEngine(config *LayoutConfig) (*WarehouseEngine, error) {
	if err := ValidateLayoutConfig(config); err != nil {
		return nil, err
	}

	e, err := NewWarehouse(config.Robots, config.Rows, config.Columns)
	if err != nil {
		return nil, err
	}

	for x, row := range config.Grid {
		copy(e.grid[x], row)
	}

	return e, nil
}
