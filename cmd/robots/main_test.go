package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/script"
)

const sampleInput = `2 2 2
5 0
0 4
ADD_GET_BOX 0 0 0 3 1
EXECUTE 0
HOW_MANY_BOXES 0
EXECUTE 1
UNDO
UNDO
PRINT_COMMANDS 0
`

func writeInput(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "robots.in")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, sampleInput)
	output := filepath.Join(dir, "robots.out")
	state := filepath.Join(dir, "state.json")

	stats, err := run(context.Background(), input, output, state)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Executed)
	require.Equal(t, 1, stats.NoCommand)
	require.Equal(t, 1, stats.Undone)
	require.Equal(t, 1, stats.NoHistory)

	out, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, []string{
		"HOW_MANY_BOXES: 3",
		script.MsgNoCommandToExecute,
		script.MsgNoHistory,
		"PRINT_COMMANDS: 0: GET 0 0 3",
	}, strings.Split(strings.TrimSpace(string(out)), "\n"))

	data, err := os.ReadFile(state)
	require.NoError(t, err)
	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Equal(t, [][]int{{5, 0}, {0, 4}}, snap.Grid)
	require.Equal(t, 9, snap.TotalBoxes)
	require.Empty(t, snap.History)
}

func TestRun_WhitespaceSeparatedInput(t *testing.T) {
	inputs := map[string]string{
		"single line": "2 2 2 5 0 0 4 ADD_GET_BOX 0 0 0 3 1 EXECUTE 0 HOW_MANY_BOXES 0",
		"split args":  "2 2\n2\n5\n0 0\n4\nADD_GET_BOX 0\n0 0\t3 1\n\nEXECUTE\n0\nHOW_MANY_BOXES\n0\n",
	}

	for name, body := range inputs {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			output := filepath.Join(dir, "robots.out")

			stats, err := run(context.Background(), writeInput(t, dir, body), output, "")
			require.NoError(t, err)
			require.Equal(t, 1, stats.Executed)

			out, err := os.ReadFile(output)
			require.NoError(t, err)
			require.Equal(t, "HOW_MANY_BOXES: 3\n", string(out))
		})
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(context.Background(), filepath.Join(dir, "missing.in"), filepath.Join(dir, "out"), "")
	require.ErrorContains(t, err, "failed to open input")

	input := writeInput(t, dir, "1 1 1\n3\nADD_GET_BOX 0 0")
	output := filepath.Join(dir, "robots.out")
	_, err = run(context.Background(), input, output, "")
	require.ErrorIs(t, err, script.ErrTruncated)

	// Output file is still created for a failed run
	_, statErr := os.Stat(output)
	require.NoError(t, statErr)
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, sampleInput)
	output := filepath.Join(dir, "custom.out")

	err := newCommand().Run(context.Background(), []string{"robots", "--input", input, "-o", output})
	require.NoError(t, err)

	out, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(out), "HOW_MANY_BOXES: 3")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, script.Stats{Commands: 4, Executed: 2, Incorrect: 1})
	require.Equal(t, "commands=4 enqueued=0 executed=2 no_command=0 undone=0 no_history=0 queries=0 incorrect=1 errors=0\n", buf.String())
}
