package balance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/internal/runtime"
	loamAdapter "github.com/aretw0/balance/pkg/adapters/loam"
	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the Balance library.
// It wraps the internal runtime and a puzzle catalog.
type Engine struct {
	runtime    *runtime.Engine
	catalog    ports.PuzzleCatalog
	puzzlesDir string
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithCatalog injects a puzzle catalog, bypassing the built-in lessons.
func WithCatalog(c ports.PuzzleCatalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithPuzzlesDir reads puzzles from a Loam directory instead of the built-in lessons.
func WithPuzzlesDir(dir string) Option {
	return func(e *Engine) {
		e.puzzlesDir = dir
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Balance Engine.
// Without a catalog option it serves the built-in lesson puzzles.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.catalog == nil {
		if eng.puzzlesDir != "" {
			catalog, err := loamAdapter.Open(context.Background(), eng.puzzlesDir)
			if err != nil {
				return nil, err
			}
			eng.catalog = catalog
		} else {
			eng.catalog = memory.DefaultCatalog()
		}
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

// Runtime exposes the stateless engine for adapters that keep state elsewhere.
func (e *Engine) Runtime() ports.StatelessEngine {
	return e.runtime
}

// Catalog returns the puzzle catalog.
func (e *Engine) Catalog() ports.PuzzleCatalog {
	return e.catalog
}

// Puzzles lists the catalog in lesson order.
func (e *Engine) Puzzles(ctx context.Context) ([]domain.Puzzle, error) {
	return e.catalog.List(ctx)
}

// NewSession creates a session with puzzleID loaded.
func (e *Engine) NewSession(ctx context.Context, puzzleID string) (*Session, error) {
	puzzle, err := e.catalog.Get(ctx, puzzleID)
	if err != nil {
		return nil, err
	}
	s := &Session{engine: e.runtime, id: uuid.NewString()}
	if err := s.LoadPuzzle(puzzle); err != nil {
		return nil, err
	}
	return s, nil
}

// Solve returns the hint-driven worked solution of puzzleID, oldest step first.
func (e *Engine) Solve(ctx context.Context, puzzleID string) (domain.Puzzle, []domain.HistoryStep, error) {
	puzzle, err := e.catalog.Get(ctx, puzzleID)
	if err != nil {
		return domain.Puzzle{}, nil, err
	}
	steps, err := runtime.Solve(puzzle.Equation(), runtime.DefaultMaxSolveSteps)
	if err != nil {
		return puzzle, steps, fmt.Errorf("cannot solve %s: %w", puzzleID, err)
	}
	return puzzle, steps, nil
}
