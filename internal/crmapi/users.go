package crmapi

import (
	"context"
	"net/http"

	userDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/user"
)

func (c *Client) ListUsers(ctx context.Context) ([]userDatamodel.User, error) {
	var out userDatamodel.ListResponse
	req := c.request(ctx).SetResult(&out)
	if err := c.send(req, http.MethodGet, "/auth/users"); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, body userDatamodel.CreateRequest) error {
	req := c.request(ctx).SetBody(body)
	return c.send(req, http.MethodPost, "/auth/users")
}

func (c *Client) UpdateUser(ctx context.Context, id string, body userDatamodel.UpdateRequest) error {
	req := c.request(ctx).SetPathParam("id", id).SetBody(body)
	return c.send(req, http.MethodPut, "/auth/users/{id}")
}

// DeactivateUser is a soft delete on the backend.
func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	req := c.request(ctx).SetPathParam("id", id)
	return c.send(req, http.MethodDelete, "/auth/users/{id}")
}
