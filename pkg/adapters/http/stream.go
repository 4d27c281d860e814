package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/pkg/domain"
)

// StreamManager fans state diffs out to the SSE subscribers of each session.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for sessionID.
// The returned cancel func unregisters and closes it.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[sessionID]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, sessionID)
				}
			}
		})
	}
}

// Subscribers reports how many streams are open for sessionID.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// Broadcast sends msg to every subscriber of sessionID.
// Slow clients with a full buffer miss the message.
func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("sse client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Publish is a session.ChangeFunc: it broadcasts the diff between old and next.
// A deleted session (next == nil) is announced with an empty diff.
func (sm *StreamManager) Publish(_ context.Context, old, next *domain.State) {
	var diff *domain.StateDiff
	switch {
	case next == nil && old != nil:
		diff = &domain.StateDiff{SessionID: old.SessionID}
	default:
		diff = domain.Diff(old, next)
	}
	if diff == nil {
		return
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("encoding state diff", "err", err)
		return
	}
	sm.logger.Debug("broadcasting state diff", "session_id", diff.SessionID, "payload_size", len(payload))
	sm.Broadcast(diff.SessionID, string(payload))
}
