package script

import (
	"iter"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/robots/warehouse/engine"
)

// Output lines. These are part of the robots.out contract and must not change.
const (
	MsgExecuted           = "Executed"
	MsgNoCommandToExecute = "EXECUTE: No command to execute"
	MsgNoHistory          = "UNDO: No History"
	MsgIncorrectCommand   = "The command is incorrect"

	PrefixPrintCommands = "PRINT_COMMANDS: "
	MsgNoCommandFound   = "No command found"

	PrefixLastExecuted   = "LAST_EXECUTED_COMMAND: "
	MsgNoCommandExecuted = "No command was executed"

	PrefixHowManyBoxes = "HOW_MANY_BOXES: "
)

// FormatOutcome renders the result of Execute or Undo
func FormatOutcome(o engine.Outcome) string {
	switch o {
	case engine.OutcomeNoCommand:
		return MsgNoCommandToExecute
	case engine.OutcomeNoHistory:
		return MsgNoHistory
	default:
		return MsgExecuted
	}
}

// FormatCommands renders a robot's pending commands as
// "PRINT_COMMANDS: <id>: GET x y n; DROP x y n"
func FormatCommands(robotID int, commands iter.Seq[engine.Command]) string {
	var b strings.Builder
	b.WriteString(PrefixPrintCommands)

	first := true
	for cmd := range commands {
		if first {
			b.WriteString(strconv.Itoa(robotID))
			b.WriteString(": ")
			first = false
		} else {
			b.WriteString("; ")
		}
		b.WriteString(cmd.String())
	}

	if first {
		b.WriteString(MsgNoCommandFound)
	}
	return b.String()
}

// FormatLastExecuted renders the top of the history
func FormatLastExecuted(last engine.AppliedCommand, ok bool) string {
	if !ok {
		return PrefixLastExecuted + MsgNoCommandExecuted
	}
	return PrefixLastExecuted + last.String()
}

// FormatHowManyBoxes renders a robot's carried count
func FormatHowManyBoxes(n int) string {
	return PrefixHowManyBoxes + strconv.Itoa(n)
}
