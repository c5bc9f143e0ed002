package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

func createValidConfig(name string) *engine.LayoutConfig {
	return &engine.LayoutConfig{
		Name:        name,
		Description: "Test layout",
		Robots:      2,
		Rows:        2,
		Columns:     2,
		Grid:        [][]int{{1, 2}, {3, 4}},
	}
}

func writeConfigFile(t *testing.T, dir, filename string, config *engine.LayoutConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "default.json", createValidConfig("Default"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	if m.GetDefault().Name != "Default" {
		t.Errorf("Expected default layout 'Default', got %q", m.GetDefault().Name)
	}

	if _, err := NewManager(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestNewManager_DefaultFallbacks(t *testing.T) {
	// Empty directory falls back to the built-in layout
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	def := m.GetDefault()
	if def.Name != DefaultConfigName || engine.ValidateLayoutConfig(def) != nil {
		t.Errorf("Expected valid built-in default, got %+v", def)
	}

	// Without default.* the first valid file wins
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a_broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	writeConfigFile(t, dir, "b_valid.json", createValidConfig("B"))

	m, err = NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	if m.GetDefault().Name != "B" {
		t.Errorf("Expected first valid layout as default, got %q", m.GetDefault().Name)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small.json", createValidConfig("Small"))
	yamlLayout := "name: Tall\nrobots: 1\nrows: 4\ncolumns: 1\ngrid: [[1], [0], [0], [2]]\n"
	if err := os.WriteFile(filepath.Join(dir, "tall.yaml"), []byte(yamlLayout), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	config, err := m.LoadConfig("small")
	if err != nil {
		t.Fatalf("Failed to load json layout: %v", err)
	}
	if config.Name != "Small" {
		t.Errorf("Expected 'Small', got %q", config.Name)
	}

	// Cached by id, with or without extension
	again, err := m.LoadConfig("small.json")
	if err != nil || again != config {
		t.Errorf("Expected cached layout, got %p vs %p (%v)", again, config, err)
	}

	config, err = m.LoadConfig("tall")
	if err != nil {
		t.Fatalf("Failed to load yaml layout: %v", err)
	}
	if config.Rows != 4 || config.Grid[3][0] != 2 {
		t.Errorf("Unexpected yaml layout: %+v", config)
	}

	if _, err := m.LoadConfig("nonexistent"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
	if _, err := m.LoadConfig("../small"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound for path traversal, got %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := createValidConfig("Bad")
	bad.Robots = 0
	writeConfigFile(t, dir, "bad.json", bad)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.LoadConfig("bad"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "alpha.json", createValidConfig("Alpha"))
	writeConfigFile(t, dir, "beta.json", createValidConfig("Beta"))
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	configs, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "alpha" || configs[1].ConfigID != "beta" {
		t.Errorf("Unexpected config ids: %s, %s", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[0].TotalBoxes != 10 || configs[0].Robots != 2 {
		t.Errorf("Unexpected config info: %+v", configs[0])
	}
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.SaveConfig("saved", createValidConfig("Saved")); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	if err := m.SaveConfig("other.yaml", createValidConfig("Other")); err != nil {
		t.Fatalf("Failed to save yaml config: %v", err)
	}
	loaded, err := engine.LoadLayoutConfig(filepath.Join(dir, "other.yaml"))
	if err != nil {
		t.Fatalf("Failed to read back yaml config: %v", err)
	}
	if loaded.Name != "Other" || loaded.Grid[1][1] != 4 {
		t.Errorf("Unexpected yaml round trip: %+v", loaded)
	}

	// A fresh manager sees both files
	m2, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	configs, _ := m2.ListConfigs()
	if len(configs) != 2 {
		t.Errorf("Expected 2 configs, got %d", len(configs))
	}

	invalid := createValidConfig("Invalid")
	invalid.Grid = [][]int{{1}}
	if err := m.SaveConfig("invalid", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := m.SaveConfig("../escape", createValidConfig("Escape")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for path name, got %v", err)
	}
}

func TestSetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "default.json", createValidConfig("Default"))
	writeConfigFile(t, dir, "other.json", createValidConfig("Other"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.SetDefault("other"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if m.GetDefault().Name != "Other" {
		t.Errorf("Expected 'Other' as default, got %q", m.GetDefault().Name)
	}
	if err := m.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	// Changes on disk show up after a refresh
	writeConfigFile(t, dir, "default.json", createValidConfig("Updated"))
	m.RefreshCache()
	if m.GetDefault().Name != "Updated" {
		t.Errorf("Expected refreshed default 'Updated', got %q", m.GetDefault().Name)
	}
}

func TestConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "shared.json", createValidConfig("Shared"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]*engine.LayoutConfig, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.LoadConfig("shared")
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r == nil || r != results[0] {
			t.Errorf("Result %d: expected the same cached layout", i)
		}
	}
}
