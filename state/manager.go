// Package state holds the application-wide component registry: parsed
// templates, the backend API client, the operator session manager and the
// browser session manager. Each field has exactly one writer (startup
// wiring); everything else reads.
package state

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"

	"cmsadmin/api"
	"cmsadmin/logger"
	"cmsadmin/session"
)

// StateManager is the read/write surface of the application state.
type StateManager interface {
	GetTemplates() *template.Template
	SetTemplates(t *template.Template) error

	GetBrowserSessions() *scs.SessionManager
	SetBrowserSessions(sm *scs.SessionManager) error

	GetAPIClient() *api.Client
	SetAPIClient(c *api.Client) error

	GetSession() *session.Manager
	SetSession(m *session.Manager) error

	GetBackendStatus() (bool, string)
	CheckBackendConnection(ctx context.Context) bool
}

// appState is the concrete implementation of StateManager.
type appState struct {
	mu              sync.RWMutex
	templates       *template.Template
	browserSessions *scs.SessionManager
	apiClient       *api.Client
	operatorSession *session.Manager

	// Backend connection status
	backendMu        sync.RWMutex
	backendConnected bool
	backendError     string
}

// NewAppState creates a new instance of the application state manager.
func NewAppState() StateManager {
	return &appState{}
}

func (s *appState) GetTemplates() *template.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates
}

func (s *appState) SetTemplates(t *template.Template) error {
	if t == nil {
		return errors.New("templates cannot be nil")
	}
	s.mu.Lock()
	s.templates = t
	s.mu.Unlock()
	return nil
}

func (s *appState) GetBrowserSessions() *scs.SessionManager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.browserSessions
}

func (s *appState) SetBrowserSessions(sm *scs.SessionManager) error {
	if sm == nil {
		return errors.New("browser session manager cannot be nil")
	}
	s.mu.Lock()
	s.browserSessions = sm
	s.mu.Unlock()
	return nil
}

func (s *appState) GetAPIClient() *api.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiClient
}

func (s *appState) SetAPIClient(c *api.Client) error {
	if c == nil {
		return errors.New("api client cannot be nil")
	}
	s.mu.Lock()
	s.apiClient = c
	s.mu.Unlock()
	return nil
}

func (s *appState) GetSession() *session.Manager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operatorSession
}

func (s *appState) SetSession(m *session.Manager) error {
	if m == nil {
		return errors.New("session manager cannot be nil")
	}
	s.mu.Lock()
	s.operatorSession = m
	s.mu.Unlock()
	return nil
}

// GetBackendStatus returns the last observed backend connection status.
func (s *appState) GetBackendStatus() (bool, string) {
	s.backendMu.RLock()
	defer s.backendMu.RUnlock()
	return s.backendConnected, s.backendError
}

// CheckBackendConnection probes the backend with a cheap public call and
// updates the status.
func (s *appState) CheckBackendConnection(ctx context.Context) bool {
	s.mu.RLock()
	client := s.apiClient
	s.mu.RUnlock()

	if client == nil {
		s.updateBackendStatus(false, "API client not initialized")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := api.NewCategories(client).List(ctx, ""); err != nil {
		s.updateBackendStatus(false, fmt.Sprintf("Failed to reach backend: %v", err))
		return false
	}
	s.updateBackendStatus(true, "")
	return true
}

// updateBackendStatus stores the status, logging only on change.
func (s *appState) updateBackendStatus(connected bool, errorMsg string) {
	s.backendMu.Lock()
	defer s.backendMu.Unlock()

	if s.backendConnected != connected || s.backendError != errorMsg {
		logger.Get().Info().
			Bool("connected", connected).
			Str("error", errorMsg).
			Msg("Backend connection status changed")
		s.backendConnected = connected
		s.backendError = errorMsg
	}
}
