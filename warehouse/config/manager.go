package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// DefaultConfigName is the layout used when no name is given
const DefaultConfigName = "default"

// layoutExtensions are tried in order when a name has no extension
var layoutExtensions = []string{".json", ".yaml", ".yml"}

// Manager handles warehouse layout loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.LayoutConfig
	configs       map[string]*engine.LayoutConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.LayoutConfig),
	}

	m.mu.Lock()
	m.loadDefaultConfigLocked()
	m.mu.Unlock()

	return m, nil
}

// LoadConfig loads a layout by name. The name may omit the extension.
func (m *Manager) LoadConfig(name string) (*engine.LayoutConfig, error) {
	id := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loadLocked(name)
}

// loadLocked reads and caches a layout; m.mu must be held for writing
func (m *Manager) loadLocked(name string) (*engine.LayoutConfig, error) {
	id := configID(name)

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.ParseLayoutConfig(data, engine.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[id] = config
	return config, nil
}

// ListConfigs returns information about all valid layouts in the directory
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !isLayoutFile(entry.Name()) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs
			continue
		}
		seen[id] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Robots:      config.Robots,
			Rows:        config.Rows,
			Columns:     config.Columns,
			TotalBoxes:  engine.CountGridBoxes(config.Grid),
		})
	}

	return configs, nil
}

// GetDefault returns the default layout
func (m *Manager) GetDefault() *engine.LayoutConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default layout by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached layout and reloads the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.configs = make(map[string]*engine.LayoutConfig)
	m.loadDefaultConfigLocked()
}

// SaveConfig validates a layout and writes it to disk. The file format follows
// the extension of name; JSON when there is none.
func (m *Manager) SaveConfig(name string, config *engine.LayoutConfig) error {
	if err := engine.ValidateLayoutConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !isLayoutFile(filename) {
		filename = name + ".json"
	}
	if filepath.Base(filename) != filename {
		return fmt.Errorf("%w: config name %q must not contain a path", ErrInvalidConfig, name)
	}

	var data []byte
	var err error
	if engine.FormatFromPath(filename) == "yaml" {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[configID(name)] = config
	m.mu.Unlock()

	return nil
}

// loadDefaultConfigLocked picks default.*, then the first valid layout, then
// a built-in minimal layout. m.mu must be held for writing.
func (m *Manager) loadDefaultConfigLocked() {
	if config, err := m.loadLocked(DefaultConfigName); err == nil {
		m.defaultConfig = config
		return
	}

	entries, err := os.ReadDir(m.configDir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() || !isLayoutFile(entry.Name()) {
				continue
			}
			if config, err := m.loadLocked(entry.Name()); err == nil {
				m.defaultConfig = config
				return
			}
		}
	}

	m.defaultConfig = createMinimalConfig()
}

// resolve finds the file for a layout name
func (m *Manager) resolve(name string) (string, error) {
	if filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	candidates := []string{name}
	if !isLayoutFile(name) {
		candidates = candidates[:0]
		for _, ext := range layoutExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, c := range candidates {
		path := filepath.Join(m.configDir, c)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	return "", fmt.Errorf("%w: %q", ErrConfigNotFound, name)
}

// createMinimalConfig creates a minimal valid layout
func createMinimalConfig() *engine.LayoutConfig {
	return &engine.LayoutConfig{
		Name:        DefaultConfigName,
		Description: "Default minimal layout",
		Robots:      2,
		Rows:        3,
		Columns:     3,
		Grid: [][]int{
			{5, 0, 0},
			{0, 0, 0},
			{0, 0, 5},
		},
	}
}

// configID strips a layout extension from a file name
func configID(name string) string {
	ext := filepath.Ext(name)
	if isLayoutFile(name) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func isLayoutFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range layoutExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
