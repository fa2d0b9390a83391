package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/storefront/internal/logging"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Observer is notified after a session state is persisted.
// prev is nil when the session was just created. next is nil after a delete.
type Observer func(ctx context.Context, prev, next *domain.State)

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store  ports.StateStore
	engine ports.Engine

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // active per-session locks

	locker    ports.DistributedLocker
	lockTTL   time.Duration
	observers []Observer
	logger    *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the lease of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithObserver registers a callback fired after every persisted change.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, o)
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Session Manager over a store and an engine.
func NewManager(store ports.StateStore, engine ports.Engine, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		engine:  engine,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe registers an observer after construction.
// Must be called before the manager is shared between goroutines.
func (m *Manager) Observe(o Observer) {
	m.observers = append(m.observers, o)
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

func (m *Manager) notify(ctx context.Context, prev, next *domain.State) {
	for _, o := range m.observers {
		o(ctx, prev, next)
	}
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

// LoadOrStart loads a session, creating and persisting a fresh one if it does not exist.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	var created bool
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		state, err = m.engine.Start(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		// Persist immediately to reserve the ID.
		if err := m.store.Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		created = true
		return nil
	})
	if err == nil && created {
		m.logger.InfoContext(ctx, "session created", "session_id", sessionID)
		m.notify(ctx, nil, state)
	}
	return state, err
}

// Apply dispatches an intent against the stored session and persists the result.
// It returns the state before and after the intent. The session must exist.
func (m *Manager) Apply(ctx context.Context, sessionID string, intent domain.Intent) (prev, next *domain.State, err error) {
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev, err = m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		next, err = m.engine.Dispatch(ctx, prev, intent)
		if err != nil {
			return err
		}
		if domain.Diff(prev, next) == nil {
			return nil
		}
		return m.store.Save(ctx, sessionID, next)
	})
	if err != nil {
		return nil, nil, err
	}
	if domain.Diff(prev, next) != nil {
		m.notify(ctx, prev, next)
	}
	return prev, next, nil
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, state *domain.State) error {
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, state)
	})
	if err == nil {
		m.notify(ctx, nil, state)
	}
	return err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	var prev *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		prev, _ = m.store.Load(ctx, sessionID)
		return m.store.Delete(ctx, sessionID)
	})
	if err == nil && prev != nil {
		m.logger.InfoContext(ctx, "session deleted", "session_id", sessionID)
		m.notify(ctx, prev, nil)
	}
	return err
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// Engine returns the engine sessions are driven by.
func (m *Manager) Engine() ports.Engine {
	return m.engine
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
			// A cancelled request context must not keep the lock until TTL.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
