// Package session holds the authenticated user and bearer token, and the
// logic that creates, validates and destroys them.
package session

import (
	"context"

	"github.com/frahmantamala/crm-console/internal"
	userDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/user"
	"github.com/frahmantamala/crm-console/internal/permission"
)

// TokenKey is the name the bearer token is persisted under.
const TokenKey = "crm_token"

type User struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     permission.Role `json:"role"`
	IsActive bool            `json:"isActive"`
}

func FromAccount(u *userDatamodel.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:       u.Key(),
		Username: u.Username,
		Name:     u.Name,
		Role:     permission.Role(u.Role),
		IsActive: u.IsActive,
	}
}

type Session struct {
	User  *User
	Token string
}

// HasPermission is false for a nil session or a session without a user.
func (s *Session) HasPermission(resource permission.Resource, action permission.Action) bool {
	if s == nil || s.User == nil {
		return false
	}
	return permission.HasPermission(s.User.Role, resource, action)
}

// Require returns ErrAccessDenied when the permission is missing.
func (s *Session) Require(resource permission.Resource, action permission.Action) error {
	if !s.HasPermission(resource, action) {
		return internal.ErrAccessDenied
	}
	return nil
}

func (s *Session) Role() permission.Role {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Role
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

func fromLogin(resp *userDatamodel.LoginResponse) (*Session, error) {
	if resp == nil || !resp.Success || resp.Token == "" || resp.User == nil {
		msg := "Login failed"
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return nil, internal.NewUnauthorizedError(msg, internal.ErrCodeInvalidCredentials)
	}
	return &Session{User: FromAccount(resp.User), Token: resp.Token}, nil
}
