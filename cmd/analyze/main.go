// Command analyze prints quick, human-readable heuristics about the layout
// files in a configs directory. It summarizes dimensions, robot counts and
// box totals, and highlights layouts that robots cannot do anything useful in.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

// LayoutReport holds the figures printed for one layout file.
type LayoutReport struct {
	File       string
	Name       string
	Robots     int
	Rows       int
	Columns    int
	TotalBoxes int
	NonEmpty   int
	Densest    engine.Position
	DensestN   int
	HasBoxes   bool
}

// Fill is the share of cells holding at least one box, in percent.
func (r LayoutReport) Fill() float64 {
	cells := r.Rows * r.Columns
	if cells == 0 {
		return 0
	}
	return float64(r.NonEmpty) * 100 / float64(cells)
}

func main() {
	dir := flag.String("dir", "configs", "Directory containing layout files")
	flag.Parse()

	files, err := layoutFiles(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *dir, err)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		report, err := analyzeLayout(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printReport(os.Stdout, report)
	}
}

// layoutFiles lists the .json, .yaml and .yml files of dir in name order
func layoutFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func analyzeLayout(path string) (LayoutReport, error) {
	config, err := engine.LoadLayoutConfig(path)
	if err != nil {
		return LayoutReport{}, err
	}

	report := LayoutReport{
		File:       filepath.Base(path),
		Name:       config.Name,
		Robots:     config.Robots,
		Rows:       config.Rows,
		Columns:    config.Columns,
		TotalBoxes: engine.CountGridBoxes(config.Grid),
		NonEmpty:   engine.NonEmptyCells(config.Grid),
	}
	report.Densest, report.DensestN, report.HasBoxes = engine.DensestCell(config.Grid)

	return report, nil
}

func printReport(w io.Writer, r LayoutReport) {
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Grid: %d x %d\n", r.Rows, r.Columns)
	fmt.Fprintf(w, "Robots: %d\n", r.Robots)
	fmt.Fprintf(w, "Total Boxes: %d\n", r.TotalBoxes)
	fmt.Fprintf(w, "Non-empty Cells: %d (%.1f%%)\n", r.NonEmpty, r.Fill())

	if !r.HasBoxes {
		fmt.Fprintf(w, "⚠️  WARNING: the grid holds no boxes, every GET will move nothing\n")
		return
	}
	fmt.Fprintf(w, "Densest Cell: (%d, %d) with %d boxes\n", r.Densest.X, r.Densest.Y, r.DensestN)

	if r.Robots > r.NonEmpty {
		fmt.Fprintf(w, "⚠️  WARNING: %d robots share %d stocked cells\n", r.Robots, r.NonEmpty)
	} else {
		fmt.Fprintf(w, "✅ Every robot can start on its own stocked cell\n")
	}
}
