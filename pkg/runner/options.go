package runner

import (
	"log/slog"

	"github.com/aretw0/balance"
	"github.com/aretw0/balance/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine whose catalog and rules the runner uses.
func WithEngine(engine *balance.Engine) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithPuzzle selects the first puzzle. Defaults to the first in the catalog.
func WithPuzzle(id string) Option {
	return func(r *Runner) {
		r.PuzzleID = id
	}
}

// WithStore mirrors the session state into a StateStore after every event.
func WithStore(store ports.StateStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSessionID sets the key used with WithStore.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithMaxInputSize overrides the sanitizer limit.
func WithMaxInputSize(n int) Option {
	return func(r *Runner) {
		r.MaxInputSize = n
	}
}
