package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/balance/pkg/adapters/redis"
	"github.com/aretw0/balance/pkg/domain"
	contract "github.com/aretw0/balance/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	contract.StateStoreContractTest(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sessionID := "session-ttl"
	state := domain.NewState(sessionID)
	state.PuzzleID = "L01-1"
	state.Equation = domain.SingleSided(1, 3, 7)

	require.NoError(t, store.Save(ctx, sessionID, state))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// The index is pruned against wall-clock time, not miniredis time.
	time.Sleep(1200 * time.Millisecond)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	sessionID := "my-session"

	state := domain.NewState(sessionID)
	state.Equation = domain.TwoSided(domain.Expression{A: 1, B: 3}, domain.Expression{A: 2, B: 1})
	require.NoError(t, store.Save(ctx, sessionID, state))

	assert.True(t, mr.Exists("custom:app:my-session"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	loaded, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.VariantTwoSided, loaded.Equation.Variant)
	assert.Equal(t, "x + 3 = 2x + 1", loaded.Equation.String())

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, sessionID)
}
