package runner

import (
	"context"

	"github.com/aretw0/balance/internal/presentation/tui"
	"github.com/aretw0/balance/pkg/domain"
)

// IOHandler defines the strategy for interacting with the learner.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	// Output presents the current view.
	Output(ctx context.Context, view View) error

	// Input reads one command line. It returns ctx.Err() when ctx is done
	// and io.EOF when the input is exhausted.
	Input(ctx context.Context) (string, error)
}

// View is everything a front end shows after an event.
type View struct {
	SessionID   string             `json:"session_id"`
	PuzzleID    string             `json:"puzzle_id"`
	PuzzleTitle string             `json:"puzzle_title"`
	Equation    domain.Equation    `json:"equation"`
	Formatted   string             `json:"formatted"`
	Left        tui.Plate          `json:"left"`
	Right       tui.Plate          `json:"right"`
	Solved      bool               `json:"solved"`
	Solution    *int               `json:"solution,omitempty"`
	Message     string             `json:"message"`
	IsError     bool               `json:"is_error,omitempty"`
	Operations  []domain.Operation `json:"operations"`

	// LastOperation and LastMagnitude are the remembered selection a bare
	// magnitude applies to.
	LastOperation domain.Operation `json:"last_operation,omitempty"`
	LastMagnitude string           `json:"last_magnitude,omitempty"`

	// Panel is optional markdown (help, history, puzzle list, hint).
	Panel string `json:"panel,omitempty"`
}
