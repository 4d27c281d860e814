package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/balance"
	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/internal/presentation/tui"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/ports"
)

// Runner drives an interactive session: render, read a command, apply it, repeat.
// It owns the presentation memory (the last selected operation and magnitude),
// which the engine never sees.
type Runner struct {
	Handler      IOHandler
	Logger       *slog.Logger
	Store        ports.StateStore
	SessionID    string
	PuzzleID     string
	MaxInputSize int

	engine  *balance.Engine
	session *balance.Session

	lastOp        domain.Operation
	lastMagnitude string

	notice  string
	isError bool
	panel   string
}

// NewRunner creates a Runner. WithEngine is required before Run.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the loop until the learner quits, input ends or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	if r.engine == nil {
		return errors.New("runner: no engine configured")
	}
	handler := r.resolveHandler()

	if err := r.start(ctx); err != nil {
		return err
	}
	r.panel = helpPanel

	signals := NewSignalManager(ctx)
	defer signals.Stop()

	for {
		loopCtx := signals.Context()
		if err := handler.Output(loopCtx, r.view()); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		r.panel, r.notice, r.isError = "", "", false

		line, err := handler.Input(loopCtx)
		if err != nil {
			if errors.Is(err, ErrMalformedInput) {
				r.fail(err.Error())
				continue
			}
			signals.CheckRace()
			if signals.Interrupted() || errors.Is(err, io.EOF) {
				r.Logger.Debug("runner stopped", "reason", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		clean, err := SanitizeInputWithLimit(line, r.MaxInputSize)
		if err != nil {
			r.fail(err.Error())
			continue
		}

		quit, err := r.execute(loopCtx, clean)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r.Handler
}

func (r *Runner) start(ctx context.Context) error {
	puzzleID := r.PuzzleID
	if puzzleID == "" {
		puzzles, err := r.engine.Puzzles(ctx)
		if err != nil {
			return err
		}
		if len(puzzles) == 0 {
			return fmt.Errorf("runner: %w: catalog is empty", domain.ErrPuzzleNotFound)
		}
		puzzleID = puzzles[0].ID
	}
	s, err := r.engine.NewSession(ctx, puzzleID)
	if err != nil {
		return err
	}
	r.session = s
	r.forgetSelection()
	return r.saveState(ctx)
}

// execute runs one command. It returns true when the learner asked to quit.
// Learner mistakes become messages; only infrastructure failures are errors.
func (r *Runner) execute(ctx context.Context, line string) (bool, error) {
	cmd, err := ParseCommand(line, r.lastOp)
	if cmd.Operation != "" {
		r.lastOp = cmd.Operation
		r.lastMagnitude = cmd.MagnitudeText
	}
	if err != nil {
		r.fail(learnerMessage(err))
		return false, nil
	}

	switch cmd.Kind {
	case CmdQuit:
		return true, nil
	case CmdNoop, CmdSelect:
	case CmdHelp:
		r.panel = helpPanel
	case CmdApply:
		if _, err := r.session.Apply(cmd.Operation, cmd.Magnitude); err != nil {
			if !isOperationError(err) {
				return false, err
			}
			r.isError = true
			r.Logger.Debug("operation rejected", "op", cmd.Operation, "k", cmd.Magnitude, "err", err)
		}
	case CmdUndo:
		r.session.Undo()
	case CmdHint:
		r.notice = r.session.SuggestNextStep()
	case CmdReset:
		if err := r.session.Reset(); err != nil {
			return false, err
		}
		r.forgetSelection()
	case CmdLoad:
		puzzle, err := r.engine.Catalog().Get(ctx, cmd.Arg)
		if errors.Is(err, domain.ErrPuzzleNotFound) {
			r.fail(fmt.Sprintf("No puzzle %q. Type \"puzzles\" to list them.", cmd.Arg))
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if err := r.session.LoadPuzzle(puzzle); err != nil {
			return false, err
		}
		r.forgetSelection()
	case CmdPuzzles:
		panel, err := r.puzzlesPanel(ctx)
		if err != nil {
			return false, err
		}
		r.panel = panel
	case CmdHistory:
		r.panel = historyPanel(r.session.History())
	}
	return false, r.saveState(ctx)
}

func (r *Runner) forgetSelection() {
	r.lastOp = ""
	r.lastMagnitude = ""
}

func (r *Runner) fail(msg string) {
	r.notice = msg
	r.isError = true
}

func (r *Runner) saveState(ctx context.Context) error {
	if r.Store == nil || r.SessionID == "" {
		return nil
	}
	state := r.session.State()
	state.SessionID = r.SessionID
	if err := r.Store.Save(ctx, r.SessionID, state); err != nil {
		return fmt.Errorf("critical persistence error: %w", err)
	}
	r.Logger.Debug("state saved", "session_id", r.SessionID, "equation", state.Equation.String())
	return nil
}

func (r *Runner) view() View {
	eq := r.session.Equation()
	left, right := tui.Plates(eq)
	v := View{
		SessionID:     r.SessionID,
		PuzzleID:      r.session.Puzzle().ID,
		PuzzleTitle:   r.session.Puzzle().Title(),
		Equation:      eq,
		Formatted:     domain.FormatEquation(eq),
		Left:          left,
		Right:         right,
		Solved:        eq.IsSolved(),
		Message:       r.session.Message(),
		IsError:       r.isError,
		Operations:    domain.OperationsFor(eq.Variant),
		LastOperation: r.lastOp,
		LastMagnitude: r.lastMagnitude,
		Panel:         r.panel,
	}
	if x, ok := eq.SolutionValue(); ok {
		v.Solution = &x
	}
	if r.notice != "" {
		v.Message = r.notice
	}
	return v
}

func isOperationError(err error) bool {
	var opErr *domain.OperationError
	return errors.As(err, &opErr)
}

func learnerMessage(err error) string {
	var opErr *domain.OperationError
	if errors.As(err, &opErr) {
		return opErr.Reason
	}
	if errors.Is(err, domain.ErrUnknownOperation) {
		return "Unknown command. Type \"help\" to see what you can do."
	}
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

const helpPanel = `## How to play

Do the same thing to both sides until **x** stands alone.

| Command | Meaning |
|---|---|
| ` + "`+ 3`, `- 2`, `× 2`, `÷ 4`" + ` | add, subtract, multiply or divide both sides |
| ` + "`-x 1`, `+x 1`" + ` | take away or add bags of x (x on both sides) |
| ` + "`3`" + ` | repeat the last operation with a new number |
| ` + "`undo`" + ` | take back the last step |
| ` + "`hint`" + ` | suggest the next step |
| ` + "`reset`" + ` | start the puzzle again |
| ` + "`puzzles`, `puzzle <id>`" + ` | list or load puzzles |
| ` + "`history`" + ` | show the steps so far |
| ` + "`quit`" + ` | leave |
`

func historyPanel(steps []domain.HistoryStep) string {
	if len(steps) == 0 {
		return "## History\n\nNo steps yet."
	}
	var b strings.Builder
	b.WriteString("## History\n\n")
	for i := len(steps) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%d. `%s`\n", len(steps)-i, domain.FormatStep(steps[i]))
	}
	return b.String()
}

func (r *Runner) puzzlesPanel(ctx context.Context) (string, error) {
	puzzles, err := r.engine.Puzzles(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("## Puzzles\n\n")
	for _, p := range puzzles {
		fmt.Fprintf(&b, "- `%s` %s\n", p.ID, p.Title())
	}
	return b.String(), nil
}
