package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/balance/pkg/domain"
)

// LoggingHooks logs every lifecycle event at info level, rejections at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPuzzleLoaded: func(_ context.Context, e *domain.PuzzleEvent) {
			logger.Info("puzzle_loaded", "session_id", e.SessionID, "puzzle_id", e.PuzzleID, "variant", e.Variant)
		},
		OnApply: func(_ context.Context, e *domain.OperationEvent) {
			logger.Info("operation_applied",
				"session_id", e.SessionID,
				"op", e.Operation,
				"k", e.Magnitude,
				"equation", e.After.String(),
			)
		},
		OnReject: func(_ context.Context, e *domain.OperationEvent) {
			logger.Warn("operation_rejected",
				"session_id", e.SessionID,
				"op", e.Operation,
				"k", e.Magnitude,
				"kind", domain.ErrorKindName(e.Err),
				"err", e.Err,
			)
		},
		OnUndo: func(_ context.Context, e *domain.OperationEvent) {
			logger.Info("undo", "session_id", e.SessionID, "equation", e.After.String())
		},
		OnSolved: func(_ context.Context, e *domain.SolvedEvent) {
			logger.Info("solved", "session_id", e.SessionID, "puzzle_id", e.PuzzleID, "x", e.Solution, "steps", e.Steps)
		},
		OnHint: func(_ context.Context, e *domain.HintEvent) {
			logger.Info("hint", "session_id", e.SessionID, "kind", e.Hint.Kind, "op", e.Hint.Operation, "k", e.Hint.Magnitude)
		},
	}
}

// Combine returns hooks that call each of the given hooks in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		out.OnPuzzleLoaded = chain(out.OnPuzzleLoaded, h.OnPuzzleLoaded)
		out.OnApply = chain(out.OnApply, h.OnApply)
		out.OnReject = chain(out.OnReject, h.OnReject)
		out.OnUndo = chain(out.OnUndo, h.OnUndo)
		out.OnSolved = chain(out.OnSolved, h.OnSolved)
		out.OnHint = chain(out.OnHint, h.OnHint)
	}
	return out
}

func chain[E any](first, next func(context.Context, E)) func(context.Context, E) {
	switch {
	case first == nil:
		return next
	case next == nil:
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		next(ctx, e)
	}
}
