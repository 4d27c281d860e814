package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/balance/pkg/domain"
)

// CommandKind identifies a REPL command.
type CommandKind string

const (
	CmdApply   CommandKind = "apply"
	CmdSelect  CommandKind = "select" // operation chosen, magnitude still pending
	CmdUndo    CommandKind = "undo"
	CmdHint    CommandKind = "hint"
	CmdReset   CommandKind = "reset"
	CmdLoad    CommandKind = "load"
	CmdPuzzles CommandKind = "puzzles"
	CmdHistory CommandKind = "history"
	CmdHelp    CommandKind = "help"
	CmdQuit    CommandKind = "quit"
	CmdNoop    CommandKind = "noop"
)

// ErrNoOperationSelected is returned for a bare magnitude before any operation was chosen.
var ErrNoOperationSelected = errors.New(`choose an operation first, e.g. "+ 3"`)

// Command is one parsed line of REPL input.
type Command struct {
	Kind      CommandKind
	Operation domain.Operation
	Magnitude int
	// MagnitudeText is the text the magnitude was parsed from.
	MagnitudeText string
	// Arg is the puzzle ID for CmdLoad.
	Arg string
}

// gluedPrefixes are checked longest first so "-x2" is not read as "- x2".
var gluedPrefixes = []string{"+x", "-x", "−x", "+", "-", "−", "×", "*", "÷", "/"}

// ParseCommand interprets a line of input. last is the operation selected
// by a previous command; a bare magnitude reuses it.
func ParseCommand(line string, last domain.Operation) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdNoop}, nil
	}

	head := strings.ToLower(fields[0])
	switch head {
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "undo", "u":
		return Command{Kind: CmdUndo}, nil
	case "hint", "h":
		return Command{Kind: CmdHint}, nil
	case "reset", "r":
		return Command{Kind: CmdReset}, nil
	case "puzzles", "ls":
		return Command{Kind: CmdPuzzles}, nil
	case "history":
		return Command{Kind: CmdHistory}, nil
	case "puzzle", "load":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: %s <id>", head)
		}
		return Command{Kind: CmdLoad, Arg: fields[1]}, nil
	}

	if len(fields) > 2 {
		return Command{}, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, line)
	}
	if len(fields) == 2 {
		return applyCommand(fields[0], fields[1])
	}

	if op, err := domain.ParseOperation(head); err == nil {
		return Command{Kind: CmdSelect, Operation: op}, nil
	}
	if startsNumeric(head) {
		if last == "" {
			return Command{}, ErrNoOperationSelected
		}
		return applyCommand(string(last), head)
	}
	for _, prefix := range gluedPrefixes {
		if rest, ok := strings.CutPrefix(head, prefix); ok && startsNumeric(rest) {
			return applyCommand(prefix, rest)
		}
	}
	return Command{}, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, line)
}

func applyCommand(opText, kText string) (Command, error) {
	op, err := domain.ParseOperation(opText)
	if err != nil {
		return Command{}, err
	}
	k, err := domain.ParseMagnitude(kText)
	if err != nil {
		var opErr *domain.OperationError
		if errors.As(err, &opErr) {
			opErr.Operation = op
		}
		return Command{Kind: CmdApply, Operation: op, MagnitudeText: kText}, err
	}
	return Command{Kind: CmdApply, Operation: op, Magnitude: k, MagnitudeText: kText}, nil
}

func startsNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || c == '.'
}
