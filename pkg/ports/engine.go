package ports

import (
	"context"

	"github.com/aretw0/balance/pkg/domain"
)

// StatelessEngine defines the equation engine as seen by adapters that manage state externally.
type StatelessEngine interface {
	// Start loads a puzzle into a fresh state.
	Start(ctx context.Context, sessionID string, puzzle domain.Puzzle) (*domain.State, error)

	// Apply applies an operation to both sides, returning the new state.
	Apply(ctx context.Context, state *domain.State, op domain.Operation, k int) (*domain.State, error)

	// Undo restores the equation before the most recent step.
	Undo(ctx context.Context, state *domain.State) (*domain.State, error)

	// Suggest returns the next recommended step without changing the state.
	Suggest(ctx context.Context, state *domain.State) (domain.Hint, error)
}
