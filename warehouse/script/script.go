// Package script runs warehouse command scripts in the robots.in format and
// writes the robots.out report.
//
// A script starts with a header "N ROWS COLS" followed by ROWS*COLS initial
// cell values, row by row. The rest is a stream of whitespace separated
// commands:
//
//	ADD_GET_BOX robot x y boxes priority
//	ADD_DROP_BOX robot x y boxes priority
//	EXECUTE robot
//	PRINT_COMMANDS robot
//	LAST_EXECUTED_COMMAND
//	UNDO
//	HOW_MANY_BOXES robot
//	HOW_MUCH_TIME
//
// EXECUTE and UNDO only report when there was nothing to do. Unknown words
// report "The command is incorrect" and the run continues.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

// Op is a script command word
type Op string

const (
	OpAddGetBox    Op = "ADD_GET_BOX"
	OpAddDropBox   Op = "ADD_DROP_BOX"
	OpExecute      Op = "EXECUTE"
	OpPrintCmds    Op = "PRINT_COMMANDS"
	OpLastExecuted Op = "LAST_EXECUTED_COMMAND"
	OpUndo         Op = "UNDO"
	OpHowManyBoxes Op = "HOW_MANY_BOXES"
	OpHowMuchTime  Op = "HOW_MUCH_TIME"
)

var (
	// ErrTruncated indicates the script ended in the middle of a header or a
	// command's arguments.
	ErrTruncated = errors.New("unexpected end of script")

	// ErrBadArgument indicates a numeric argument that is not an integer.
	ErrBadArgument = errors.New("invalid argument")
)

// Stats counts what happened during a run
type Stats struct {
	Commands  int `json:"commands"`
	Enqueued  int `json:"enqueued"`
	Executed  int `json:"executed"`
	NoCommand int `json:"no_command"`
	Undone    int `json:"undone"`
	NoHistory int `json:"no_history"`
	Queries   int `json:"queries"`
	Incorrect int `json:"incorrect"`
	Errors    int `json:"errors"`
}

// Interpreter executes commands against an engine and writes the report
type Interpreter struct {
	eng   engine.Engine
	out   *bufio.Writer
	stats Stats
}

// NewInterpreter creates an interpreter that reports to w
func NewInterpreter(eng engine.Engine, w io.Writer) *Interpreter {
	return &Interpreter{eng: eng, out: bufio.NewWriter(w)}
}

// Stats returns the counters accumulated so far
func (in *Interpreter) Stats() Stats {
	return in.stats
}

// Run reads commands from r until EOF. Engine errors are reported and the run
// continues; a truncated or malformed argument list stops it.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	return in.run(ctx, newTokenizer(r))
}

func (in *Interpreter) run(ctx context.Context, tok *tokenizer) error {
	defer in.out.Flush()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		word, ok := tok.next()
		if !ok {
			break
		}
		in.stats.Commands++

		if err := in.step(Op(word), tok); err != nil {
			return err
		}
	}

	if err := tok.err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return in.out.Flush()
}

// step runs one command. Only argument errors are returned.
func (in *Interpreter) step(op Op, tok *tokenizer) error {
	switch op {
	case OpAddGetBox, OpAddDropBox:
		args, err := tok.ints(op, 5)
		if err != nil {
			return err
		}
		kind := engine.Get
		if op == OpAddDropBox {
			kind = engine.Drop
		}
		cmd := engine.Command{Kind: kind, X: args[1], Y: args[2], Boxes: args[3]}
		if err := in.eng.Enqueue(args[0], cmd, engine.InsertAtFront(args[4])); err != nil {
			in.fail(op, err)
			return nil
		}
		in.stats.Enqueued++

	case OpExecute:
		args, err := tok.ints(op, 1)
		if err != nil {
			return err
		}
		outcome, err := in.eng.Execute(args[0])
		if err != nil {
			in.fail(op, err)
			return nil
		}
		if outcome == engine.OutcomeNoCommand {
			in.stats.NoCommand++
			in.println(FormatOutcome(outcome))
		} else {
			in.stats.Executed++
		}

	case OpUndo:
		outcome, err := in.eng.Undo()
		if err != nil {
			in.fail(op, err)
			return nil
		}
		if outcome == engine.OutcomeNoHistory {
			in.stats.NoHistory++
			in.println(FormatOutcome(outcome))
		} else {
			in.stats.Undone++
		}

	case OpPrintCmds:
		args, err := tok.ints(op, 1)
		if err != nil {
			return err
		}
		commands, err := in.eng.Commands(args[0])
		if err != nil {
			in.fail(op, err)
			return nil
		}
		in.stats.Queries++
		in.println(FormatCommands(args[0], commands))

	case OpLastExecuted:
		in.stats.Queries++
		in.println(FormatLastExecuted(in.eng.LastExecutedCommand()))

	case OpHowManyBoxes:
		args, err := tok.ints(op, 1)
		if err != nil {
			return err
		}
		n, err := in.eng.HowManyBoxes(args[0])
		if err != nil {
			in.fail(op, err)
			return nil
		}
		in.stats.Queries++
		in.println(FormatHowManyBoxes(n))

	case OpHowMuchTime:
		// accepted, never reported

	default:
		in.stats.Incorrect++
		in.println(MsgIncorrectCommand)
	}

	return nil
}

func (in *Interpreter) fail(op Op, err error) {
	in.stats.Errors++
	in.println(fmt.Sprintf("%s: %v", op, err))
}

func (in *Interpreter) println(line string) {
	in.out.WriteString(line)
	in.out.WriteByte('\n')
}

// RunCommands runs a header-less command stream against an existing engine
func RunCommands(ctx context.Context, eng engine.Engine, r io.Reader, w io.Writer) (Stats, error) {
	in := NewInterpreter(eng, w)
	err := in.Run(ctx, r)
	return in.Stats(), err
}

// RunFile reads the header and initial grid from r, builds a warehouse and
// runs the remaining commands against it
func RunFile(ctx context.Context, r io.Reader, w io.Writer) (*engine.WarehouseEngine, Stats, error) {
	tok := newTokenizer(r)

	eng, err := readHeader(tok)
	if err != nil {
		return nil, Stats{}, err
	}

	in := NewInterpreter(eng, w)
	err = in.run(ctx, tok)
	return eng, in.Stats(), err
}

func readHeader(tok *tokenizer) (*engine.WarehouseEngine, error) {
	dims, err := tok.ints("header", 3)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewWarehouse(dims[0], dims[1], dims[2])
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	for x := 0; x < dims[1]; x++ {
		row, err := tok.ints("grid", dims[2])
		if err != nil {
			return nil, err
		}
		for y, v := range row {
			if err := eng.SetMapValue(x, y, v); err != nil {
				return nil, fmt.Errorf("grid: %w", err)
			}
		}
	}

	return eng, nil
}

// tokenizer splits a script into whitespace separated words
type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, bool) {
	if !t.sc.Scan() {
		return "", false
	}
	return t.sc.Text(), true
}

func (t *tokenizer) err() error {
	return t.sc.Err()
}

// ints reads n integer arguments for the named command
func (t *tokenizer) ints(what Op, n int) ([]int, error) {
	args := make([]int, n)
	for i := range args {
		word, ok := t.next()
		if !ok {
			if err := t.err(); err != nil {
				return nil, fmt.Errorf("read script: %w", err)
			}
			return nil, fmt.Errorf("%s: %w: want %d arguments, got %d", what, ErrTruncated, n, i)
		}
		v, err := strconv.Atoi(word)
		if err != nil {
			return nil, fmt.Errorf("%s: %w %q", what, ErrBadArgument, word)
		}
		args[i] = v
	}
	return args, nil
}
