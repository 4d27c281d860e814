package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/balance/pkg/domain"
)

// Catalog implements ports.PuzzleCatalog over a fixed list of puzzles.
type Catalog struct {
	order []string
	byID  map[string]domain.Puzzle
}

// NewCatalog creates a catalog that serves puzzles in the given order.
// Puzzles are copied; duplicate or invalid puzzles are rejected.
func NewCatalog(puzzles ...domain.Puzzle) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(puzzles)),
		byID:  make(map[string]domain.Puzzle, len(puzzles)),
	}
	for _, p := range puzzles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid puzzle %q: %w", p.ID, err)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate puzzle id %q", p.ID)
		}
		c.order = append(c.order, p.ID)
		c.byID[p.ID] = clonePuzzle(p)
	}
	return c, nil
}

// Get returns a copy of the puzzle with the given ID.
func (c *Catalog) Get(ctx context.Context, id string) (domain.Puzzle, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Puzzle{}, fmt.Errorf("%w: %s", domain.ErrPuzzleNotFound, id)
	}
	return clonePuzzle(p), nil
}

// List returns copies of all puzzles in catalog order.
func (c *Catalog) List(ctx context.Context) ([]domain.Puzzle, error) {
	puzzles := make([]domain.Puzzle, 0, len(c.order))
	for _, id := range c.order {
		puzzles = append(puzzles, clonePuzzle(c.byID[id]))
	}
	return puzzles, nil
}

func clonePuzzle(p domain.Puzzle) domain.Puzzle {
	if p.Right != nil {
		right := *p.Right
		p.Right = &right
	}
	return p
}
