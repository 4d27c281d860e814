package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/balance/internal/logging"
	"github.com/aretw0/balance/internal/runtime"
	"github.com/aretw0/balance/pkg/adapters/memory"
	"github.com/aretw0/balance/pkg/domain"
	"github.com/aretw0/balance/pkg/ports"
	"github.com/google/uuid"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// ChangeFunc observes a committed state transition. old is nil for a new session
// and next is nil for a deleted one.
type ChangeFunc func(ctx context.Context, old, next *domain.State)

// Manager orchestrates session access, ensuring every event of a session is
// applied strictly one at a time.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store   ports.StateStore
	engine  ports.StatelessEngine
	catalog ports.PuzzleCatalog

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker   ports.DistributedLocker // Optional distributed locker
	lockTTL  time.Duration
	logger   *slog.Logger
	onChange ChangeFunc
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides ports.DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithEngine overrides the default engine.
func WithEngine(engine ports.StatelessEngine) Option {
	return func(m *Manager) {
		if engine != nil {
			m.engine = engine
		}
	}
}

// WithCatalog overrides the built-in puzzle catalog.
func WithCatalog(catalog ports.PuzzleCatalog) Option {
	return func(m *Manager) {
		if catalog != nil {
			m.catalog = catalog
		}
	}
}

// WithChangeHook registers fn to run after each committed transition,
// while the session lock is still held.
func WithChangeHook(fn ChangeFunc) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: ports.DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.engine == nil {
		m.engine = runtime.NewEngine(runtime.WithLogger(m.logger))
	}
	if m.catalog == nil {
		m.catalog = memory.DefaultCatalog()
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Catalog returns the puzzle catalog sessions are started from.
func (m *Manager) Catalog() ports.PuzzleCatalog {
	return m.catalog
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// Start loads puzzleID into sessionID, replacing any existing state.
// An empty sessionID gets a generated one.
func (m *Manager) Start(ctx context.Context, sessionID, puzzleID string) (*domain.State, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	puzzle, err := m.catalog.Get(ctx, puzzleID)
	if err != nil {
		return nil, err
	}

	var next *domain.State
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		old, err := m.loadOptional(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = m.engine.Start(ctx, sessionID, puzzle)
		if err != nil {
			return err
		}
		return m.commit(ctx, old, next)
	})
	return next, err
}

// Reset reloads the session's current puzzle, clearing its history.
func (m *Manager) Reset(ctx context.Context, sessionID string) (*domain.State, error) {
	state, err := m.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.Loaded() {
		return nil, domain.ErrNoPuzzleLoaded
	}
	return m.Start(ctx, sessionID, state.PuzzleID)
}

// Apply applies op with magnitude k to the session's equation.
// Rejected operations leave the stored state untouched.
func (m *Manager) Apply(ctx context.Context, sessionID string, op domain.Operation, k int) (*domain.State, error) {
	return m.update(ctx, sessionID, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return m.engine.Apply(ctx, state, op, k)
	})
}

// Undo reverts the session's most recent step.
func (m *Manager) Undo(ctx context.Context, sessionID string) (*domain.State, error) {
	return m.update(ctx, sessionID, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return m.engine.Undo(ctx, state)
	})
}

// Hint suggests the next step for the session without changing it.
func (m *Manager) Hint(ctx context.Context, sessionID string) (domain.Hint, error) {
	var hint domain.Hint
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		hint, err = m.engine.Suggest(ctx, state)
		return err
	})
	return hint, err
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		old, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return err
		}
		m.notify(ctx, old, nil)
		return nil
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

func (m *Manager) update(ctx context.Context, sessionID string, fn func(context.Context, *domain.State) (*domain.State, error)) (*domain.State, error) {
	var next *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		old, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = fn(ctx, old)
		if err != nil {
			return err
		}
		return m.commit(ctx, old, next)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (m *Manager) loadOptional(ctx context.Context, sessionID string) (*domain.State, error) {
	state, err := m.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}
	return state, nil
}

func (m *Manager) commit(ctx context.Context, old, next *domain.State) error {
	if err := m.store.Save(ctx, next.SessionID, next); err != nil {
		return fmt.Errorf("failed to save session %s: %w", next.SessionID, err)
	}
	m.notify(ctx, old, next)
	return nil
}

func (m *Manager) notify(ctx context.Context, old, next *domain.State) {
	if m.onChange != nil {
		m.onChange(ctx, old, next)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
