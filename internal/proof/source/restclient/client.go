// Package restclient is the shared HTTP layer of the remote indexer sources: rate limited,
// instrumented JSON and text GETs.
package restclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/ratelimit"
)

// ErrNotFound is returned when the remote answers 404.
var ErrNotFound = errors.New("resource not found")

// Metrics records one remote call.
type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// StatusError is a non-2xx answer.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// Client issues GETs against one base URL.
type Client struct {
	rest    *resty.Client
	limiter ratelimit.Limiter
	metrics Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing requests per second; zero or less means unlimited.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = ratelimit.New(rps)
		}
	}
}

// WithHeader sets a header on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.rest.SetHeader(key, value)
		}
	}
}

// WithQueryParam sets a query parameter on every request, e.g. an API token.
func WithQueryParam(key, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.rest.SetQueryParam(key, value)
		}
	}
}

// New builds a Client for baseURL.
func New(baseURL string, metrics Metrics, opts ...Option) *Client {
	c := &Client{
		rest:    resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")),
		limiter: ratelimit.NewUnlimited(),
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON decodes the JSON body of GET path into out.
func (c *Client) GetJSON(ctx context.Context, operation, path string, query map[string]string, out any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(operation, err, started)
	}()

	_, err = c.get(ctx, path, query, out)
	return err
}

// GetText returns the trimmed body of GET path.
func (c *Client) GetText(ctx context.Context, operation, path string) (text string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(operation, err, started)
	}()

	resp, err := c.get(ctx, path, nil, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// get waits for the limiter, then issues the request. A non-nil result is decoded as JSON
// whatever content type the remote declares.
func (c *Client) get(ctx context.Context, path string, query map[string]string, result any) (*resty.Response, error) {
	c.limiter.Take()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json, text/plain")
	if query != nil {
		req.SetQueryParams(query)
	}
	if result != nil {
		req.SetResult(result).ForceContentType("application/json")
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("get %s: %w", path, ErrNotFound)
	}
	if resp.IsError() || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("get %s: %w", path, &StatusError{Status: resp.StatusCode(), Body: truncate(resp.String(), 256)})
	}
	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
