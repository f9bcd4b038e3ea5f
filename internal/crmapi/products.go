package crmapi

import (
	"context"
	"net/http"

	productDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/product"
)

func (c *Client) ListProducts(ctx context.Context) ([]productDatamodel.Product, error) {
	var out []productDatamodel.Product
	req := c.request(ctx).SetResult(&out)
	if err := c.send(req, http.MethodGet, "/products"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p productDatamodel.Product) error {
	req := c.request(ctx).SetBody(p)
	return c.send(req, http.MethodPost, "/products")
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p productDatamodel.Product) error {
	req := c.request(ctx).SetPathParam("id", id).SetBody(p)
	return c.send(req, http.MethodPut, "/products/{id}")
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	req := c.request(ctx).SetPathParam("id", id)
	return c.send(req, http.MethodDelete, "/products/{id}")
}

// ReceiveStock records a batch against a product's stock ledger.
func (c *Client) ReceiveStock(ctx context.Context, receipt productDatamodel.StockReceipt) error {
	req := c.request(ctx).SetBody(receipt)
	return c.send(req, http.MethodPost, "/stock/receive")
}
