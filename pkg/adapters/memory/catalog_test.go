package memory_test

import (
	"testing"

	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
	contract "github.com/aretw0/balance/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Contract(t *testing.T) {
	contract.PuzzleCatalogContractTest(t, memory.DefaultCatalog(), memory.DefaultPuzzles())
}

func TestDefaultPuzzles_AreValid(t *testing.T) {
	puzzles := memory.DefaultPuzzles()
	require.Len(t, puzzles, 6)

	for _, p := range puzzles {
		require.NoError(t, p.Validate(), p.ID)
	}
	assert.Equal(t, domain.VariantSingleSided, puzzles[0].Variant())
	assert.Equal(t, "x + 3 = 2x + 1", puzzles[4].Equation().String())
	assert.Equal(t, "3x + 1 = x + 9", puzzles[5].Equation().String())
}

func TestNewCatalog_Rejects(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		p := domain.Puzzle{ID: "dup", A: 1, B: 1, C: 2}
		_, err := memory.NewCatalog(p, p)
		assert.ErrorContains(t, err, "duplicate")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := memory.NewCatalog(domain.Puzzle{A: 1, C: 2})
		assert.Error(t, err)
	})
}
