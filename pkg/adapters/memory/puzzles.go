package memory

import "github.com/aretw0/balance/pkg/domain"

// DefaultPuzzles returns the built-in lesson puzzles.
func DefaultPuzzles() []domain.Puzzle {
	return []domain.Puzzle{
		{ID: "L01-1", Lesson: "01", Label: "x + 3 = 7 (getting started)", A: 1, B: 3, C: 7},
		{ID: "L02-1", Lesson: "02", Label: "x - 4 = 6 (undo a subtraction)", A: 1, B: -4, C: 6},
		{ID: "L03-1", Lesson: "03", Label: "4x = 20 (share equally)", A: 4, B: 0, C: 20},
		{ID: "L04-1", Lesson: "04", Label: "3x + 2 = 14 (two steps)", A: 3, B: 2, C: 14},
		// Lesson 05: x on both sides, gather the bags onto one side first.
		{ID: "L05-1", Lesson: "05", Label: "x + 3 = 2x + 1 (take away 1 bag first)", A: 1, B: 3, Right: &domain.Expression{A: 2, B: 1}},
		{ID: "L05-2", Lesson: "05", Label: "3x + 1 = x + 9 (take away 1 bag first)", A: 3, B: 1, Right: &domain.Expression{A: 1, B: 9}},
	}
}

// DefaultCatalog returns a catalog of the built-in puzzles.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultPuzzles()...)
	if err != nil {
		panic(err)
	}
	return c
}
