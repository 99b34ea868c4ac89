// Package authority integrates with the external authentication and
// action-authorization service. Only the response status code is consumed:
// 200 approves, anything else denies, and transport failures deny as well —
// the gateway fails closed.
package authority

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/nordcodes/session-gateway/internal/config"
)

// Authority approves or denies authentication and action requests on behalf
// of the external service.
type Authority interface {
	Authenticate(ctx context.Context, token string) bool
	AuthorizeAction(ctx context.Context, token string) bool
}

type Client struct {
	httpClient *http.Client

	authURL   string
	actionURL string
}

var _ = Authority(&Client{})

// NewClient builds a client for the configured authority endpoints. When
// httpClient is nil a client with the configured request timeout is used.
func NewClient(cfg config.Authority, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing authority base URL: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		authURL:    base.JoinPath(cfg.AuthPath).String(),
		actionURL:  base.JoinPath(cfg.ActionPath).String(),
	}, nil
}

func (c *Client) Authenticate(ctx context.Context, token string) bool {
	return c.approve(ctx, c.authURL, token)
}

func (c *Client) AuthorizeAction(ctx context.Context, token string) bool {
	return c.approve(ctx, c.actionURL, token)
}

// approve issues a single synchronous POST and maps the outcome to a
// decision. No retries: retry policy, if ever wanted, belongs to the caller.
func (c *Client) approve(ctx context.Context, endpoint, token string) bool {
	form := url.Values{}
	form.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		slogctx.Error(ctx, "Building external service request", "url", endpoint, "error", err)
		return false
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Unreachable or timed out: deny, never crash or hang the caller.
		slogctx.Warn(ctx, "External service call failed", "url", endpoint, "error", err)
		return false
	}

	defer resp.Body.Close()

	// Response bodies are not interpreted; drain to reuse the connection.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		slogctx.Info(ctx, "External service denied the request", "url", endpoint, "status", resp.StatusCode)
		return false
	}

	return true
}
