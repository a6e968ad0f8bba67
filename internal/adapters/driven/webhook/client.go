// Package webhook implements the driven Backend port against the
// remote automation backend. Every operation is a named webhook
// endpoint; responses are loosely typed and handed back as decoded
// JSON for the normaliser.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/briefdesk-cli/internal/logger"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 15 * time.Second

	// ThrottleRate is the proactive request rate (req/sec). The
	// automation backend queues executions; bursts make it fall over.
	ThrottleRate = 4

	// ThrottleBurst is the token bucket size.
	ThrottleBurst = 4
)

// Client talks to the webhook backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  driven.TokenProvider
	limiter *rate.Limiter
}

// NewClient creates a client for the given base URL. tokens may be
// nil when the backend is unauthenticated.
func NewClient(baseURL string, tokens driven.TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(ThrottleRate), ThrottleBurst),
	}
}

// APIError is a non-2xx webhook response.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// do sends one request and returns the decoded JSON body. An empty
// body decodes to nil; a non-empty body that is not JSON is an error.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body io.Reader, contentType string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle wait: %w", err)
	}

	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: token: %w", endpoint, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger.Debug("webhook %s %s", method, endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", endpoint, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%s: decode body: %w", endpoint, err)
	}
	return decoded, nil
}

// getJSON fetches an endpoint with optional query parameters.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values) (any, error) {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, "")
}

// sendJSON posts a JSON payload with the given method.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, payload any) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode body: %w", endpoint, err)
	}
	return c.do(ctx, method, endpoint, nil, bytes.NewReader(body), "application/json")
}
