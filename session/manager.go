// Package session owns the client-side authentication lifecycle: the
// in-memory session, its durable mirror and the logout sequence.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/octabyte/becas-client/models"
	"github.com/octabyte/becas-client/otel/metrics"
	"github.com/octabyte/becas-client/utils/logger"
	"go.uber.org/zap"
)

// Invalidator revokes a session server-side. *api.Client satisfies it.
type Invalidator interface {
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// Navigator moves the application to its entry route.
type Navigator interface {
	NavigateHome(ctx context.Context)
}

type NavigatorFunc func(ctx context.Context)

func (f NavigatorFunc) NavigateHome(ctx context.Context) { f(ctx) }

// Listener observes every session change. It runs outside the manager's
// lock and must not block.
type Listener func(models.Session)

// Manager is the single authority over the current session. Reads are safe
// from any goroutine; only its methods mutate state.
type Manager struct {
	store             *Store
	invalidator       Invalidator
	navigator         Navigator
	invalidateTimeout time.Duration

	mu      sync.RWMutex
	current models.Session

	listenersMu sync.Mutex
	listeners   []subscription
	nextID      uint64
}

type subscription struct {
	id uint64
	fn Listener
}

type Option func(*Manager)

func WithInvalidator(inv Invalidator) Option {
	return func(m *Manager) { m.invalidator = inv }
}

func WithNavigator(nav Navigator) Option {
	return func(m *Manager) { m.navigator = nav }
}

// WithInvalidateTimeout bounds the server-side logout call. Zero means the
// call is bounded only by the caller's context.
func WithInvalidateTimeout(d time.Duration) Option {
	return func(m *Manager) { m.invalidateTimeout = d }
}

// NewManager restores the persisted session, if any. This is the only
// startup read of durable storage.
func NewManager(ctx context.Context, store *Store, opts ...Option) *Manager {
	m := &Manager{store: store}
	for _, opt := range opts {
		opt(m)
	}

	sess, err := store.Load(ctx)
	if err != nil {
		logger.LogWarn("discarding persisted session", logger.WithTrace(ctx, zap.Error(err))...)
	}
	if sess != nil && sess.Active() {
		m.current = *sess
		metrics.RecordSessionEvent(ctx, metrics.EventRestored)
		logger.LogDebug("session restored", zap.String("user_id", sess.User.ID))
	}
	return m
}

func (m *Manager) IsActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Active()
}

// User returns a copy of the current user, or nil when inactive.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current.User == nil {
		return nil
	}
	u := *m.current.User
	return &u
}

// Tokens returns a copy of the current tokens, or nil when inactive.
func (m *Manager) Tokens() *models.TokenSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current.Tokens == nil {
		return nil
	}
	t := *m.current.Tokens
	return &t
}

// Snapshot returns a copy of the whole session.
func (m *Manager) Snapshot() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() models.Session {
	var out models.Session
	if m.current.User != nil {
		u := *m.current.User
		out.User = &u
	}
	if m.current.Tokens != nil {
		t := *m.current.Tokens
		out.Tokens = &t
	}
	return out
}

// Subscribe registers l and returns a function that removes it. Calling
// the returned function more than once is a no-op.
func (m *Manager) Subscribe(l Listener) func() {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, subscription{id: id, fn: l})
	return func() {
		m.listenersMu.Lock()
		defer m.listenersMu.Unlock()
		for i, sub := range m.listeners {
			if sub.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) notify(sess models.Session) {
	m.listenersMu.Lock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, sub := range m.listeners {
		listeners = append(listeners, sub.fn)
	}
	m.listenersMu.Unlock()

	for _, l := range listeners {
		l(sess)
	}
}

// LoginSuccess replaces the current session wholesale and persists it.
// Inputs are trusted; a persistence failure is logged and ignored.
func (m *Manager) LoginSuccess(ctx context.Context, user models.User, tokens models.TokenSet) {
	m.mu.Lock()
	m.current = models.Session{User: &user, Tokens: &tokens}
	sess := m.snapshotLocked()
	m.mu.Unlock()

	// persistence outlives a cancelled caller
	if err := m.store.Save(context.WithoutCancel(ctx), user, tokens); err != nil {
		metrics.RecordSessionEvent(ctx, metrics.EventPersistError)
		logger.LogWarn("failed to persist session", logger.WithTrace(ctx, zap.Error(err))...)
	}

	metrics.RecordSessionEvent(ctx, metrics.EventLogin)
	logger.LogInfo("session started", logger.WithTrace(ctx,
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)...)
	m.notify(sess)
}

// Logout ends the session locally. It never contacts the server.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = models.Session{}
	m.mu.Unlock()

	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		metrics.RecordSessionEvent(ctx, metrics.EventPersistError)
		logger.LogWarn("failed to clear persisted session", logger.WithTrace(ctx, zap.Error(err))...)
	}

	metrics.RecordSessionEvent(ctx, metrics.EventLogout)
	logger.LogInfo("session ended", logger.WithTrace(ctx)...)
	m.notify(models.Session{})
}

// LogoutAndNavigateHome invalidates the session server-side when a token is
// available, then always logs out locally and navigates home.
func (m *Manager) LogoutAndNavigateHome(ctx context.Context) {
	if tokens := m.resolveTokens(ctx); tokens != nil && tokens.AccessToken != "" && m.invalidator != nil {
		m.invalidate(ctx, *tokens)
	}

	m.Logout(ctx)

	if m.navigator != nil {
		m.navigator.NavigateHome(ctx)
	}
}

// resolveTokens prefers memory and falls back to a fresh durable read, which
// covers a logout issued before the in-memory copy is populated.
func (m *Manager) resolveTokens(ctx context.Context) *models.TokenSet {
	if tokens := m.Tokens(); tokens != nil {
		return tokens
	}

	sess, err := m.store.Load(ctx)
	if err != nil {
		logger.LogDebug("no persisted tokens for logout", zap.Error(err))
		return nil
	}
	if sess == nil {
		return nil
	}
	return sess.Tokens
}

func (m *Manager) invalidate(ctx context.Context, tokens models.TokenSet) {
	callCtx := ctx
	if m.invalidateTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, m.invalidateTimeout)
		defer cancel()
	}

	if err := m.invalidator.Logout(callCtx, tokens.AccessToken, tokens.RefreshToken); err != nil {
		metrics.RecordSessionEvent(ctx, metrics.EventInvalidateError)
		logger.LogWarn("server-side logout failed", logger.WithTrace(ctx, zap.Error(err))...)
	}
}
