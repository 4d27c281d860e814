package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StateStoreContractTest verifies that a StateStore implementation adheres to the interface contract.
func StateStoreContractTest(t *testing.T, store ports.StateStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := sampleState(sessionID)

		require.NoError(t, store.Save(ctx, sessionID, state), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.PuzzleID, loaded.PuzzleID)
		assert.Equal(t, state.Equation, loaded.Equation)
		assert.Equal(t, state.Message, loaded.Message)
		require.Len(t, loaded.History, 1)
		assert.Equal(t, state.History[0], loaded.History[0])
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, sampleState(sessionID)))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Equation = domain.SingleSided(9, 9, 9)
		loaded.History = nil

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.SingleSided(3, 0, 12), again.Equation)
		assert.Len(t, again.History, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, sampleState(sessionID)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, sampleState(id1)))
		require.NoError(t, store.Save(ctx, id2, sampleState(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

func sampleState(sessionID string) *domain.State {
	state := domain.NewState(sessionID)
	state.PuzzleID = "L04-1"
	state.Equation = domain.SingleSided(3, 0, 12)
	state.Message = "Nice: you did the same thing to both sides, so the equals sign still holds."
	state.History = []domain.HistoryStep{{
		Operation: domain.OpSubtract,
		Magnitude: 2,
		Before:    domain.SingleSided(3, 2, 14),
		After:     domain.SingleSided(3, 0, 12),
	}}
	return state
}

// PuzzleCatalogContractTest verifies that a PuzzleCatalog serves exactly the expected puzzles, in order.
func PuzzleCatalogContractTest(t *testing.T, catalog ports.PuzzleCatalog, expected []domain.Puzzle) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for _, want := range expected {
			got, err := catalog.Get(ctx, want.ID)
			require.NoError(t, err, "puzzle %s", want.ID)
			assert.Equal(t, want.Equation(), got.Equation(), "puzzle %s", want.ID)
			assert.Equal(t, want.Label, got.Label, "puzzle %s", want.ID)
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := catalog.Get(ctx, "non-existent-puzzle")
		assert.ErrorIs(t, err, domain.ErrPuzzleNotFound)
	})

	t.Run("List", func(t *testing.T) {
		puzzles, err := catalog.List(ctx)
		require.NoError(t, err)
		require.Len(t, puzzles, len(expected))
		for i := range expected {
			assert.Equal(t, expected[i].ID, puzzles[i].ID)
		}
	})

	t.Run("Templates are not shared", func(t *testing.T) {
		if len(expected) == 0 {
			t.Skip("empty catalog")
		}
		id := expected[0].ID
		first, err := catalog.Get(ctx, id)
		require.NoError(t, err)
		first.A = 999
		if first.Right != nil {
			first.Right.A = 999
		}

		second, err := catalog.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, expected[0].Equation(), second.Equation())
	})
}
