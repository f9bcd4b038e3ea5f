package crmapi

import (
	"context"
	"net/http"

	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
)

func (c *Client) ListOrders(ctx context.Context) ([]orderDatamodel.Order, error) {
	var out []orderDatamodel.Order
	req := c.request(ctx).SetResult(&out)
	if err := c.send(req, http.MethodGet, "/orders"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus patches the status of the order with backend id id.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	req := c.request(ctx).
		SetPathParam("id", id).
		SetBody(orderDatamodel.StatusUpdate{Status: status})
	return c.send(req, http.MethodPatch, "/orders/{id}/status")
}
