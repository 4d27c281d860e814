package loam

import (
	"context"
	"testing"

	"github.com/aretw0/balance/internal/testutils"
	"github.com/aretw0/balance/pkg/domain"
	contract "github.com/aretw0/balance/pkg/ports/tests"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docs := []core.Document{
		{ID: "l01-1.md", Content: `---
id: L01-1
label: x + 3 = 7
lesson: "01"
a: 1
b: 3
c: 7
---
Getting started`},
		{ID: "l05-1.md", Content: `---
id: L05-1
label: x + 3 = 2x + 1
lesson: "05"
a: 1
b: 3
right:
  a: 2
  b: 1
---
Bags on both sides`},
	}
	for _, doc := range docs {
		require.NoError(t, repo.Save(ctx, doc))
	}

	catalog, err := Load(ctx, loam.NewTypedRepository[PuzzleMetadata](repo))
	require.NoError(t, err)

	contract.PuzzleCatalogContractTest(t, catalog, []domain.Puzzle{
		{ID: "L01-1", Label: "x + 3 = 7", Lesson: "01", A: 1, B: 3, C: 7},
		{ID: "L05-1", Label: "x + 3 = 2x + 1", Lesson: "05", A: 1, B: 3, Right: &domain.Expression{A: 2, B: 1}},
	})
}

func TestLoad_DefaultsFromFile(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"neg.md": `---
a: 1
b: -4
c: 6
---
# Undo a subtraction`,
		"share.json": `{"a": 4, "b": 0, "c": 20, "label": "4x = 20"}`,
	}
	testutils.WritePuzzleFiles(t, dir, files)

	catalog, err := Load(context.Background(), loam.NewTypedRepository[PuzzleMetadata](repo))
	require.NoError(t, err)

	neg, err := catalog.Get(context.Background(), "neg")
	require.NoError(t, err)
	assert.Equal(t, "Undo a subtraction", neg.Label)
	assert.Equal(t, "x - 4 = 6", neg.Equation().String())

	share, err := catalog.Get(context.Background(), "share")
	require.NoError(t, err)
	assert.Equal(t, domain.SingleSided(4, 0, 20), share.Equation())
}

func TestLoad_DetectsCollisions(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)

	testutils.WritePuzzleFiles(t, dir, map[string]string{
		"a.md": "---\nid: same\na: 1\nc: 2\n---\n",
		"b.md": "---\nid: same\na: 1\nc: 3\n---\n",
	})

	_, err := Load(context.Background(), loam.NewTypedRepository[PuzzleMetadata](repo))
	assert.ErrorContains(t, err, "collision detected")
}

func TestLoad_RejectsInvalidPuzzle(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)

	testutils.WritePuzzleFiles(t, dir, map[string]string{"bad.md": "---\na: nope\n---\n"})

	_, err := Load(context.Background(), loam.NewTypedRepository[PuzzleMetadata](repo))
	assert.ErrorContains(t, err, "bad.md")
}
