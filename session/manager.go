// Package session owns the operator's authentication lifecycle: one
// credential/user pair, one writer, explicit restore/login/logout/invalidate
// transitions. Everything else in the application only reads.
package session

import (
	"context"
	"fmt"
	"sync"

	"cmsadmin/api"
	"cmsadmin/logger"
)

// Status is the authentication state of the console.
type Status int

const (
	// StatusUnknown holds from construction until Restore finishes. While
	// Unknown, protected views render a neutral loading state instead of
	// redirecting.
	StatusUnknown Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// LoginAPI is the slice of the backend client the manager needs.
type LoginAPI interface {
	Login(ctx context.Context, identifier, secret string) (*api.LoginResult, error)
}

// Manager is the sole owner of the credential pair. It implements
// api.TokenSource for the transport, and its Invalidate method is wired as
// the transport's unauthorized hook.
type Manager struct {
	mu     sync.RWMutex
	status Status
	creds  *Credentials

	store Store
	auth  LoginAPI

	// invalidations carries the redirect-to-login signal. Buffered with
	// capacity 1 and sent at most once per authenticated period, however
	// many concurrent calls observe a 401.
	invalidations chan struct{}
}

// NewManager creates a manager in the Unknown state.
func NewManager(store Store, auth LoginAPI) *Manager {
	return &Manager{
		status:        StatusUnknown,
		store:         store,
		auth:          auth,
		invalidations: make(chan struct{}, 1),
	}
}

// Status returns the current authentication state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// User returns the current operator when authenticated.
func (m *Manager) User() (api.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status != StatusAuthenticated || m.creds == nil {
		return api.User{}, false
	}
	return m.creds.User, true
}

// Token implements api.TokenSource. Empty while unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return ""
	}
	return m.creds.Token
}

// Invalidations is the redirect signal the application shell subscribes to.
func (m *Manager) Invalidations() <-chan struct{} {
	return m.invalidations
}

// Restore reads the persisted pair. It always leaves the manager in
// Authenticated or Unauthenticated, never Unknown: a missing file, a parse
// failure or a half-complete pair all resolve to Unauthenticated, and a
// damaged file is cleared rather than kept around.
func (m *Manager) Restore() {
	creds, err := m.store.Load()

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case err != nil:
		logger.Get().Warn().Err(err).Msg("Discarding unreadable stored credentials")
		if clearErr := m.store.Clear(); clearErr != nil {
			logger.Get().Error().Err(clearErr).Msg("Failed to clear stored credentials")
		}
		m.creds = nil
		m.status = StatusUnauthenticated
	case creds == nil || creds.Token == "" || creds.User.ID == 0:
		if creds != nil {
			logger.Get().Warn().Msg("Stored credentials incomplete, discarding pair")
			if clearErr := m.store.Clear(); clearErr != nil {
				logger.Get().Error().Err(clearErr).Msg("Failed to clear stored credentials")
			}
		}
		m.creds = nil
		m.status = StatusUnauthenticated
	default:
		m.creds = creds
		m.status = StatusAuthenticated
		logger.Get().Info().Str("username", creds.User.Username).Msg("Session restored")
	}
}

// Login exchanges credentials with the backend. On success the pair is held
// in memory and persisted; on failure the state stays Unauthenticated and
// the error carries the backend's message when one was given.
func (m *Manager) Login(ctx context.Context, identifier, secret string) error {
	result, err := m.auth.Login(ctx, identifier, secret)
	if err != nil {
		m.mu.Lock()
		if m.status == StatusUnknown {
			m.status = StatusUnauthenticated
		}
		m.mu.Unlock()
		return err
	}

	// A success response without a token would authenticate with nothing to
	// send; treat it like a failed exchange.
	if result.AccessToken == "" {
		m.mu.Lock()
		if m.status == StatusUnknown {
			m.status = StatusUnauthenticated
		}
		m.mu.Unlock()
		return fmt.Errorf("login response carried no access token")
	}

	creds := &Credentials{Token: result.AccessToken, User: result.User}

	m.mu.Lock()
	m.creds = creds
	m.status = StatusAuthenticated
	// Re-arm the invalidation signal for the new authenticated period.
	select {
	case <-m.invalidations:
	default:
	}
	m.mu.Unlock()

	if err := m.store.Save(creds); err != nil {
		// The in-memory session stays valid; only restore-on-restart is lost.
		logger.Get().Error().Err(err).Msg("Failed to persist credentials")
	}

	logger.Get().Info().Str("username", result.User.Username).Msg("Operator signed in")
	return nil
}

// Logout clears the pair. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	wasAuthenticated := m.status == StatusAuthenticated
	m.creds = nil
	m.status = StatusUnauthenticated
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to clear stored credentials")
	}
	if wasAuthenticated {
		logger.Get().Info().Msg("Operator signed out")
	}
}

// Invalidate is the ambient 401 reaction: clear the pair and emit exactly
// one redirect signal for the authenticated period that just ended. Calls
// while already unauthenticated do nothing.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	if m.status != StatusAuthenticated {
		if m.status == StatusUnknown {
			m.status = StatusUnauthenticated
		}
		m.mu.Unlock()
		return
	}
	m.creds = nil
	m.status = StatusUnauthenticated
	select {
	case m.invalidations <- struct{}{}:
	default:
	}
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to clear stored credentials")
	}
	logger.Get().Warn().Msg("Session invalidated by backend, sign-in required")
}
