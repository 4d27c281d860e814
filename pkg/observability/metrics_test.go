package observability_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/internal/runtime"
	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordEngineEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(metrics.Hooks()))
	ctx := context.Background()

	puzzle, err := memory.DefaultCatalog().Get(ctx, "L03-1")
	require.NoError(t, err)

	state, err := engine.Start(ctx, "s1", puzzle)
	require.NoError(t, err)

	_, err = engine.Apply(ctx, state, domain.OpDivide, 0)
	require.Error(t, err)

	_, err = engine.Suggest(ctx, state)
	require.NoError(t, err)

	state, err = engine.Apply(ctx, state, domain.OpDivide, 4)
	require.NoError(t, err)

	_, err = engine.Undo(ctx, state)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PuzzlesLoaded.WithLabelValues("L03-1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("divide")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Rejections.WithLabelValues("divide", "division_by_zero")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Hints.WithLabelValues("step")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Solved.WithLabelValues("L03-1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Undos))

	count, err := testutil.GatherAndCount(reg, "balance_solve_steps")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCombine_CallsAllHooks(t *testing.T) {
	var buf bytes.Buffer
	metrics := observability.NewMetrics(nil)
	hooks := observability.Combine(
		observability.LoggingHooks(logging.NewWithWriter(&buf, 0)),
		metrics.Hooks(),
	)

	hooks.OnUndo(context.Background(), &domain.OperationEvent{EventBase: domain.EventBase{SessionID: "s"}})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Undos))
	assert.Contains(t, buf.String(), "msg=undo")
	assert.Contains(t, buf.String(), "session_id=s")
}
