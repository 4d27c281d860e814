package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/pkg/domain"
)

// Engine is the core equation transformation engine.
// It is stateless: every call takes a state and returns a new one, leaving
// the input untouched, so callers decide where state lives.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for UpdatedAt and event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start loads a puzzle into a fresh state for sessionID.
// It is the only transition that clears history, and it is idempotent for
// the same puzzle.
func (e *Engine) Start(ctx context.Context, sessionID string, puzzle domain.Puzzle) (*domain.State, error) {
	if err := puzzle.Validate(); err != nil {
		return nil, fmt.Errorf("invalid puzzle %q: %w", puzzle.ID, err)
	}

	state := domain.NewState(sessionID)
	state.PuzzleID = puzzle.ID
	state.Equation = puzzle.Equation()
	state.Message = IntroMessage(state.Equation.Variant)
	state.UpdatedAt = e.now()

	e.logger.Debug("puzzle loaded",
		"session_id", sessionID,
		"puzzle_id", puzzle.ID,
		"equation", state.Equation.String(),
	)
	if e.hooks.OnPuzzleLoaded != nil {
		e.hooks.OnPuzzleLoaded(ctx, &domain.PuzzleEvent{
			EventBase: e.event(domain.EventPuzzleLoaded, sessionID),
			PuzzleID:  puzzle.ID,
			Variant:   state.Equation.Variant,
		})
	}
	return state, nil
}

// Apply validates and applies op with magnitude k to both sides.
// On success the returned state carries a new history step at the front.
// On failure the error is a *domain.OperationError and no state is returned.
func (e *Engine) Apply(ctx context.Context, state *domain.State, op domain.Operation, k int) (*domain.State, error) {
	if state == nil || !state.Loaded() {
		return nil, domain.ErrNoPuzzleLoaded
	}

	before := state.Equation
	after, err := Transform(before, op, k)
	if err != nil {
		e.logger.Debug("operation rejected",
			"session_id", state.SessionID,
			"op", op,
			"k", k,
			"equation", before.String(),
			"err", err,
		)
		if e.hooks.OnReject != nil {
			e.hooks.OnReject(ctx, &domain.OperationEvent{
				EventBase: e.event(domain.EventOperationRejected, state.SessionID),
				Operation: op,
				Magnitude: k,
				Before:    before,
				After:     before,
				Err:       err,
			})
		}
		return nil, err
	}

	step := domain.HistoryStep{Operation: op, Magnitude: k, Before: before, After: after}
	next := state.Snapshot()
	next.Equation = after
	next.History = append([]domain.HistoryStep{step}, state.History...)
	next.Message = resultMessage(after)
	next.UpdatedAt = e.now()

	e.logger.Debug("operation applied",
		"session_id", state.SessionID,
		"op", op,
		"k", k,
		"equation", after.String(),
	)
	if e.hooks.OnApply != nil {
		e.hooks.OnApply(ctx, &domain.OperationEvent{
			EventBase: e.event(domain.EventOperationApplied, state.SessionID),
			Operation: op,
			Magnitude: k,
			Before:    before,
			After:     after,
		})
	}
	if x, ok := after.SolutionValue(); ok && !before.IsSolved() && e.hooks.OnSolved != nil {
		e.hooks.OnSolved(ctx, &domain.SolvedEvent{
			EventBase: e.event(domain.EventSolved, state.SessionID),
			PuzzleID:  state.PuzzleID,
			Solution:  x,
			Steps:     len(next.History),
		})
	}
	return next, nil
}

// Undo pops the most recent step and restores the equation before it.
// It is a no-op on empty history and is never itself recorded.
func (e *Engine) Undo(ctx context.Context, state *domain.State) (*domain.State, error) {
	if state == nil || !state.Loaded() {
		return nil, domain.ErrNoPuzzleLoaded
	}
	if len(state.History) == 0 {
		return state.Snapshot(), nil
	}

	step := state.History[0]
	next := state.Snapshot()
	next.Equation = step.Before
	next.History = next.History[1:]
	next.UpdatedAt = e.now()

	e.logger.Debug("step undone",
		"session_id", state.SessionID,
		"op", step.Operation,
		"k", step.Magnitude,
		"equation", next.Equation.String(),
	)
	if e.hooks.OnUndo != nil {
		e.hooks.OnUndo(ctx, &domain.OperationEvent{
			EventBase: e.event(domain.EventUndo, state.SessionID),
			Operation: step.Operation,
			Magnitude: step.Magnitude,
			Before:    step.After,
			After:     step.Before,
		})
	}
	return next, nil
}

// Suggest returns the next recommended step for the state's equation.
func (e *Engine) Suggest(ctx context.Context, state *domain.State) (domain.Hint, error) {
	if state == nil || !state.Loaded() {
		return domain.Hint{}, domain.ErrNoPuzzleLoaded
	}
	hint := Suggest(state.Equation)
	if e.hooks.OnHint != nil {
		e.hooks.OnHint(ctx, &domain.HintEvent{
			EventBase: e.event(domain.EventHint, state.SessionID),
			Hint:      hint,
		})
	}
	return hint, nil
}

func (e *Engine) event(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, SessionID: sessionID}
}
