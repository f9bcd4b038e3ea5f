package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/crm-console/internal"
)

// Cache remembers which user a token belongs to. Get returns nil, nil on a
// miss.
type Cache interface {
	Get(ctx context.Context, token string) (*User, error)
	Set(ctx context.Context, token string, u *User) error
	Delete(ctx context.Context, token string) error
}

// Resolver turns bearer tokens of incoming HTTP requests into sessions.
type Resolver struct {
	auth   Authenticator
	cache  Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewResolver accepts a nil cache; every request then goes to the backend.
func NewResolver(auth Authenticator, cache Cache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{auth: auth, cache: cache, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for token expiry checks.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

func (r *Resolver) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, internal.ErrNoSession
	}
	if expired(token, r.now()) {
		r.evict(ctx, token)
		return nil, internal.ErrTokenExpired
	}

	if r.cache != nil {
		u, err := r.cache.Get(ctx, token)
		if err != nil {
			r.logger.Warn("session cache read failed", "error", err)
		} else if u != nil {
			return &Session{User: u, Token: token}, nil
		}
	}

	account, err := r.auth.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	u := FromAccount(account)
	if r.cache != nil {
		if err := r.cache.Set(ctx, token, u); err != nil {
			r.logger.Warn("session cache write failed", "error", err)
		}
	}
	return &Session{User: u, Token: token}, nil
}

func (r *Resolver) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := r.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s, err := fromLogin(resp)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, s.Token, s.User); err != nil {
			r.logger.Warn("session cache write failed", "error", err)
		}
	}
	return s, nil
}

// Logout forgets token. The backend has no logout endpoint.
func (r *Resolver) Logout(ctx context.Context, token string) {
	r.evict(ctx, token)
}

func (r *Resolver) evict(ctx context.Context, token string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, token); err != nil {
		r.logger.Warn("session cache delete failed", "error", err)
	}
}
