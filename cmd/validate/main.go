// Command validate checks the warehouse layout files in a configs directory.
// It checks:
//   - JSON or YAML structure and required fields
//   - Robot count and grid dimensions within the engine limits
//   - Grid shape matching rows and columns, with no negative cells
//   - Layout ids that collide across extensions (default.json and default.yaml)
//   - That an engine can be built from the layout
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages contains informational lines; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	ID       string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...any) {
	r.Messages = append(r.Messages, "✓ "+fmt.Sprintf(format, args...))
}

// validateLayout loads and validates a single layout file
func validateLayout(filePath string) ValidationResult {
	base := filepath.Base(filePath)
	result := ValidationResult{
		File:     base,
		ID:       strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base))),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	// ParseLayoutConfig also runs ValidateLayoutConfig
	config, err := engine.ParseLayoutConfig(data, engine.FormatFromPath(filePath))
	if err != nil {
		result.fail("%v", err)
		return result
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		result.fail("Engine rejected layout: %v", err)
		return result
	}

	result.info("Name: %s", config.Name)
	result.info("Grid: %dx%d", config.Rows, config.Columns)
	result.info("Robots: %d", config.Robots)
	if len(config.Grid) == 0 {
		result.info("Grid: not given, every cell starts empty")
	} else {
		result.info("Boxes: %d in %d cells", eng.TotalBoxes(), engine.NonEmptyCells(config.Grid))
	}

	return result
}

// validateFiles validates every file and flags ids shared by more than one
// file. The first file in name order wins when a session asks for that id.
func validateFiles(files []string) []ValidationResult {
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	owner := make(map[string]string)
	for _, file := range files {
		result := validateLayout(file)
		if first, ok := owner[result.ID]; ok {
			result.fail("Layout id %q is already used by %s", result.ID, first)
		} else {
			owner[result.ID] = result.File
		}
		results = append(results, result)
	}
	return results
}

func layoutFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

// main validates each layout in -dir, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := flag.String("dir", "configs", "Directory containing layout files")
	flag.Parse()

	files, err := layoutFiles(*configDir)
	if err != nil {
		fmt.Printf("Error finding layout files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No layout files found in %s\n", *configDir)
		os.Exit(1)
	}

	allValid := true
	for _, result := range validateFiles(files) {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Messages {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Println("  ❌ " + msg)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All layouts are valid!")
	} else {
		fmt.Println("❌ Some layouts have errors")
		os.Exit(1)
	}
}
