package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/balance/pkg/adapters/memory"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Start(ctx, sid, "L01-1")
		_ = mgr.Delete(ctx, sid)
	}

	mgr.mu.Lock()
	lockCount := len(mgr.locks)
	mgr.mu.Unlock()

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
