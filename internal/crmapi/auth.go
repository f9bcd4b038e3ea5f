package crmapi

import (
	"context"
	"net/http"

	"github.com/frahmantamala/crm-console/internal"
	userDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/user"
)

// Login exchanges credentials for a bearer token. It is the only call sent
// without an Authorization header.
func (c *Client) Login(ctx context.Context, username, password string) (*userDatamodel.LoginResponse, error) {
	var out userDatamodel.LoginResponse
	req := c.anonymous(ctx).
		SetBody(userDatamodel.LoginRequest{Username: username, Password: password}).
		SetResult(&out)
	if err := c.send(req, http.MethodPost, "/auth/login"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user behind the current token.
func (c *Client) Me(ctx context.Context) (*userDatamodel.User, error) {
	var out userDatamodel.MeResponse
	req := c.request(ctx).SetResult(&out)
	if err := c.send(req, http.MethodGet, "/auth/me"); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, internal.ErrInvalidToken
	}
	return out.User, nil
}

// Verify validates token regardless of the client's own token source.
func (c *Client) Verify(ctx context.Context, token string) (*userDatamodel.User, error) {
	return c.As(token).Me(ctx)
}
