package dsl

import (
	"fmt"

	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
)

// Builder manages the catalog construction.
type Builder struct {
	order   []string
	puzzles map[string]*PuzzleBuilder
}

// New creates a new catalog builder.
func New() *Builder {
	return &Builder{
		puzzles: make(map[string]*PuzzleBuilder),
	}
}

// Puzzle creates a new puzzle in the catalog.
// If the puzzle already exists, it returns the existing builder.
func (b *Builder) Puzzle(id string) *PuzzleBuilder {
	if pb, ok := b.puzzles[id]; ok {
		return pb
	}
	pb := &PuzzleBuilder{
		puzzle:  domain.Puzzle{ID: id, A: 1},
		builder: b,
	}
	b.puzzles[id] = pb
	b.order = append(b.order, id)
	return pb
}

// Build compiles the puzzles, in declaration order, into a memory catalog.
func (b *Builder) Build() (*memory.Catalog, error) {
	puzzles := make([]domain.Puzzle, 0, len(b.order))
	for _, id := range b.order {
		puzzles = append(puzzles, b.puzzles[id].puzzle)
	}

	catalog, err := memory.NewCatalog(puzzles...)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return catalog, nil
}

// PuzzleBuilder configures one puzzle.
// The left side defaults to a bare x.
type PuzzleBuilder struct {
	puzzle  domain.Puzzle
	builder *Builder
}

// Label sets the text shown in puzzle menus.
func (pb *PuzzleBuilder) Label(label string) *PuzzleBuilder {
	pb.puzzle.Label = label
	return pb
}

// Lesson sets the lesson the puzzle belongs to.
func (pb *PuzzleBuilder) Lesson(lesson string) *PuzzleBuilder {
	pb.puzzle.Lesson = lesson
	return pb
}

// Left sets the left side to a·x + b.
func (pb *PuzzleBuilder) Left(a, b int) *PuzzleBuilder {
	pb.puzzle.A, pb.puzzle.B = a, b
	return pb
}

// Equals makes the puzzle single-sided with constant c on the right.
func (pb *PuzzleBuilder) Equals(c int) *PuzzleBuilder {
	pb.puzzle.C = c
	pb.puzzle.Right = nil
	return pb
}

// Right makes the puzzle two-sided with a·x + b on the right.
func (pb *PuzzleBuilder) Right(a, b int) *PuzzleBuilder {
	pb.puzzle.C = 0
	pb.puzzle.Right = &domain.Expression{A: a, B: b}
	return pb
}

// Puzzle starts the next puzzle, allowing one chain for a whole catalog.
func (pb *PuzzleBuilder) Puzzle(id string) *PuzzleBuilder {
	return pb.builder.Puzzle(id)
}

// Build is a shortcut for the parent Builder's Build.
func (pb *PuzzleBuilder) Build() (*memory.Catalog, error) {
	return pb.builder.Build()
}
