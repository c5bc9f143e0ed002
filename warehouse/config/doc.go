// Package config manages warehouse layouts stored in a directory.
//
// A layout file is JSON or YAML (.json, .yaml, .yml) and describes the robot
// count, grid dimensions and optional initial box counts:
//
//	{
//	  "name": "small",
//	  "description": "Two robots on a 3x3 floor",
//	  "robots": 2,
//	  "rows": 3,
//	  "columns": 3,
//	  "grid": [[5, 0, 0], [0, 0, 0], [0, 0, 5]]
//	}
//
// Layouts are addressed by file name without extension and cached after the
// first load. The default layout is default.*, else the first valid file,
// else a built-in 3x3 layout.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	layout, err := manager.LoadConfig("small")
package config
