package ports

import (
	"context"

	"github.com/aretw0/balance/pkg/domain"
)

// PuzzleCatalog defines where puzzle templates come from.
// Puzzles are read-only; a catalog never hands out shared mutable state.
type PuzzleCatalog interface {
	// Get returns the puzzle with the given ID.
	// Returns domain.ErrPuzzleNotFound if the catalog has no such puzzle.
	Get(ctx context.Context, id string) (domain.Puzzle, error)

	// List returns every puzzle in lesson order.
	List(ctx context.Context) ([]domain.Puzzle, error)
}
