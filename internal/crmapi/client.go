// Package crmapi talks to the remote CRM REST API.
package crmapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() string
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

type Config struct {
	// Endpoint is the base URL including the path prefix, e.g.
	// http://localhost:5000/api/crm.
	Endpoint string
	Timeout  time.Duration
}

type Client struct {
	http   *resty.Client
	tokens TokenSource
	logger *slog.Logger
}

// New builds a client. Requests are never retried.
func New(cfg Config, tokens TokenSource, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		tokens: tokens,
		logger: logger.With("component", "crmapi"),
	}
}

// WithTokenSource returns a copy of c that reads its token from ts.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	return &Client{http: c.http, tokens: ts, logger: c.logger}
}

// As returns a copy of c that authenticates every call with token.
func (c *Client) As(token string) *Client {
	return c.WithTokenSource(staticToken(token))
}

type tokenKey struct{}

// ContextWithToken makes calls made with ctx authenticate as token,
// overriding the client's token source. The console server uses it to
// forward the caller's bearer token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token, _ := ctx.Value(tokenKey{}).(string); token != "" {
		req.SetAuthToken(token)
		return req
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.SetAuthToken(token)
		}
	}
	return req
}

// anonymous builds a request that never carries a bearer token.
func (c *Client) anonymous(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

func (c *Client) send(req *resty.Request, method, path string) error {
	req.SetError(&apiError{})

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("backend unreachable", "method", method, "path", path, "error", err)
		return classifyTransport(err)
	}

	c.logger.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"duration_ms", time.Since(start).Milliseconds())

	if resp.IsError() {
		return classifyResponse(resp)
	}
	return nil
}
