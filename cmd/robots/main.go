// Command robots runs a warehouse command file.
//
// The input is a stream of whitespace separated words: "robots rows columns",
// then the grid values row by row, then the commands with their arguments.
// Line breaks carry no meaning. Query output goes to the output file:
//
//	robots --input robots.in --output robots.out
//	robots -i - -o -          # stdin to stdout
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/script"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "robots",
		Usage: "run a warehouse command file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   "robots.in",
				Usage:   "command file to read, - for stdin",
				Sources: cli.EnvVars("ROBOTS_INPUT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "robots.out",
				Usage:   "file to write query output to, - for stdout",
				Sources: cli.EnvVars("ROBOTS_OUTPUT"),
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "write the final warehouse snapshot as JSON to this file",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print command counts to stderr when done",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stats, err := run(ctx, cmd.String("input"), cmd.String("output"), cmd.String("state"))
			if cmd.Bool("stats") {
				printStats(os.Stderr, stats)
			}
			return err
		},
	}
}

// run executes the input file and writes its report. Output produced before
// a script error is still written.
func run(ctx context.Context, inputPath, outputPath, statePath string) (script.Stats, error) {
	in, closeIn, err := openInput(inputPath)
	if err != nil {
		return script.Stats{}, err
	}
	defer closeIn()

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return script.Stats{}, err
	}

	eng, stats, runErr := script.RunFile(ctx, in, out)
	if err := closeOut(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	if runErr != nil {
		return stats, fmt.Errorf("%s: %w", inputPath, runErr)
	}

	if statePath != "" {
		if err := writeState(statePath, eng); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}

func writeState(path string, eng *engine.WarehouseEngine) error {
	data, err := json.MarshalIndent(eng.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func printStats(w io.Writer, s script.Stats) {
	fmt.Fprintf(w, "commands=%d enqueued=%d executed=%d no_command=%d undone=%d no_history=%d queries=%d incorrect=%d errors=%d\n",
		s.Commands, s.Enqueued, s.Executed, s.NoCommand, s.Undone, s.NoHistory, s.Queries, s.Incorrect, s.Errors)
}
