package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	userDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/user"
)

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	// Load returns "" when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*userDatamodel.LoginResponse, error)
	Verify(ctx context.Context, token string) (*userDatamodel.User, error)
}

// Manager owns the single session of a terminal process. It doubles as the
// token source of the API client.
type Manager struct {
	store  TokenStore
	auth   Authenticator
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	token   string
	current *Session
}

func NewManager(store TokenStore, auth Authenticator, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		auth:   auth,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for token expiry checks.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Init restores the persisted session. A token that is expired or rejected
// by the backend is removed from the store. Network failures keep it, the
// token may still be good.
func (m *Manager) Init(ctx context.Context) (*Session, error) {
	token, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil, internal.ErrNoSession
	}

	if expired(token, m.now()) {
		m.logger.Info("stored token expired, clearing session")
		m.teardown(ctx)
		return nil, internal.ErrTokenExpired
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	account, err := m.auth.Verify(ctx, token)
	if err != nil {
		if internal.IsType(err, internal.ErrorTypeNetwork) {
			m.mu.Lock()
			m.token = ""
			m.mu.Unlock()
			return nil, err
		}
		m.logger.Warn("stored token rejected, clearing session", "error", err)
		m.teardown(ctx)
		return nil, internal.ErrInvalidToken
	}

	s := &Session{User: FromAccount(account), Token: token}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s, err := fromLogin(resp)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, s.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}

	m.mu.Lock()
	m.token = s.Token
	m.current = s
	m.mu.Unlock()

	m.logger.Info("logged in", "username", s.User.Username, "role", s.User.Role)
	return s, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Check clears the session when err says the backend no longer accepts the
// token. err is returned as is.
func (m *Manager) Check(ctx context.Context, err error) error {
	if err != nil && internal.IsType(err, internal.ErrorTypeUnauthorized) && m.Token() != "" {
		m.logger.Warn("backend rejected the token, clearing session", "error", err)
		m.teardown(ctx)
	}
	return err
}

// Current returns nil when nobody is logged in.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) teardown(ctx context.Context) {
	if err := m.Logout(ctx); err != nil {
		m.logger.Error("failed to clear session", "error", err)
	}
}
