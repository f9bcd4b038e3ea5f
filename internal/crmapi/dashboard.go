package crmapi

import (
	"context"
	"net/http"

	dashboardDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/dashboard"
)

func (c *Client) KPIs(ctx context.Context) (*dashboardDatamodel.KPIs, error) {
	var out dashboardDatamodel.KPIs
	req := c.request(ctx).SetResult(&out)
	if err := c.send(req, http.MethodGet, "/dashboard/kpis"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SalesByChannel(ctx context.Context, period string) ([]dashboardDatamodel.ChannelSales, error) {
	var out []dashboardDatamodel.ChannelSales
	req := c.request(ctx).SetQueryParam("period", period).SetResult(&out)
	if err := c.send(req, http.MethodGet, "/dashboard/sales-by-channel"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LowStock(ctx context.Context) (*dashboardDatamodel.StockSummary, error) {
	var out dashboardDatamodel.StockSummary
	req := c.request(ctx).SetResult(&out)
	if err := c.send(req, http.MethodGet, "/dashboard/low-stock"); err != nil {
		return nil, err
	}
	return &out, nil
}
