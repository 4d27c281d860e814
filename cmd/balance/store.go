package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/balance/internal/config"
	"github.com/aretw0/balance/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/balance/pkg/adapters/redis"
	"github.com/aretw0/balance/pkg/ports"
)

// newStore returns the Redis store when configured, otherwise an in-memory one.
// The Redis store is also returned on its own so callers can build a locker.
func newStore(ctx context.Context, cfg *config.Config) (ports.StateStore, *redisAdapter.Store, error) {
	if !cfg.Redis.Enabled() {
		return memory.NewStore(), nil, nil
	}

	store := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redisAdapter.WithTTL(time.Duration(cfg.Redis.TTL)),
		redisAdapter.WithPrefix(cfg.Redis.Prefix),
	)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Client().Ping(pingCtx).Err(); err != nil {
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
	}
	return store, store, nil
}
