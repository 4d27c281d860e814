package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Catalog(t *testing.T) {
	catalog, err := New().
		Puzzle("L06-1").Label("gather first").Lesson("06").Left(2, 3).Right(1, 5).
		Puzzle("L06-2").Left(5, -1).Equals(14).
		Puzzle("bare").Equals(9).
		Build()
	require.NoError(t, err)

	ctx := context.Background()
	puzzles, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, puzzles, 3)
	assert.Equal(t, []string{"L06-1", "L06-2", "bare"}, []string{puzzles[0].ID, puzzles[1].ID, puzzles[2].ID})

	two, err := catalog.Get(ctx, "L06-1")
	require.NoError(t, err)
	assert.Equal(t, domain.VariantTwoSided, two.Variant())
	assert.Equal(t, "2x + 3 = x + 5", two.Equation().String())
	assert.Equal(t, "gather first", two.Label)

	single, err := catalog.Get(ctx, "L06-2")
	require.NoError(t, err)
	assert.Equal(t, "5x - 1 = 14", single.Equation().String())

	bare, err := catalog.Get(ctx, "bare")
	require.NoError(t, err)
	assert.Equal(t, "x = 9", bare.Equation().String())
}

func TestBuilder_ReusesExistingPuzzle(t *testing.T) {
	b := New()
	b.Puzzle("p").Left(2, 0).Equals(8)
	b.Puzzle("p").Label("renamed")

	catalog, err := b.Build()
	require.NoError(t, err)

	p, err := catalog.Get(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "renamed", p.Label)
	assert.Equal(t, domain.SingleSided(2, 0, 8), p.Equation())
}

func TestBuilder_RightThenEquals(t *testing.T) {
	catalog, err := New().Puzzle("p").Right(1, 1).Equals(3).Build()
	require.NoError(t, err)

	p, err := catalog.Get(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, domain.VariantSingleSided, p.Variant())
}

func TestBuilder_RejectsEmptyID(t *testing.T) {
	_, err := New().Puzzle("").Equals(1).Build()
	assert.Error(t, err)
}
