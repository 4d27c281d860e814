package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// SignalManager ties the REPL to SIGINT/SIGTERM so Ctrl+C ends the loop
// instead of killing the process mid-render.
type SignalManager struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalManager starts listening for signals on top of parent.
func NewSignalManager(parent context.Context) *SignalManager {
	if parent == nil {
		parent = context.Background()
	}
	sm := &SignalManager{parent: parent}
	sm.Reset()
	return sm
}

// Context is cancelled when a signal arrives or the parent is done.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Reset re-arms the listener with a fresh context.
func (sm *SignalManager) Reset() {
	if sm.cancel != nil {
		sm.cancel()
	}
	sm.ctx, sm.cancel = signal.NotifyContext(sm.parent, os.Interrupt, syscall.SIGTERM)
}

// Stop permanently stops the signal listener.
func (sm *SignalManager) Stop() {
	if sm.cancel != nil {
		sm.cancel()
	}
}

// CheckRace waits briefly to see if a cancellation follows an input error.
// Some terminals deliver EOF on Ctrl+C slightly before the signal itself.
func (sm *SignalManager) CheckRace() {
	if sm.ctx.Err() != nil {
		return
	}
	select {
	case <-sm.ctx.Done():
	case <-time.After(100 * time.Millisecond):
	}
}

// Interrupted reports whether the loop should stop because of a signal or
// a cancelled parent.
func (sm *SignalManager) Interrupted() bool {
	return sm.ctx.Err() != nil
}
