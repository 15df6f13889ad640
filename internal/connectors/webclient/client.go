package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultUserAgent identifies trustsearch to source APIs.
	DefaultUserAgent = "trustsearch/1.0 (+https://github.com/custodia-labs/trustsearch)"

	// DefaultTimeout is the HTTP client timeout. Provider deadlines are
	// normally shorter and come from the request context.
	DefaultTimeout = 20 * time.Second

	// MaxBodyBytes bounds how much of a response body is read.
	MaxBodyBytes = 4 << 20

	maxErrorMessage = 200
)

// Client performs rate-limited GET requests.
type Client struct {
	http      *http.Client
	userAgent string
	limiter   *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimiter sets the per-host limiter. Providers sharing a client
// share its limiter.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// New creates a client with default timeout, User-Agent and rate limits.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		limiter:   NewRateLimiter(DefaultRequestsPerSecond, DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient returns the underlying HTTP client, for SDKs that need one.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// UserAgent returns the User-Agent sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// Get fetches rawURL with params appended to its query and returns the body.
// Non-2xx responses produce an APIError; 429 produces a RateLimitError.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	return c.get(ctx, rawURL, params, "")
}

// GetJSON fetches rawURL and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	body, err := c.get(ctx, rawURL, params, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", redact(rawURL), err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values, accept string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redact(uerr.URL)
		}
		return nil, fmt.Errorf("fetch %s: %w", redact(rawURL), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", redact(rawURL), err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, c.limiter.Backoff(u.Host, resp)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    truncate(strings.TrimSpace(string(body)), maxErrorMessage),
			URL:        redact(rawURL),
		}
	}

	return body, nil
}

// redact drops the query string, which may carry API keys.
func redact(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
