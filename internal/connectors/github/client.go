package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultHTTPTimeout is the default HTTP request timeout.
const DefaultHTTPTimeout = 20 * time.Second

// Client wraps the go-github client. The underlying client is rebuilt when
// the token changes, since credentials arrive with each search.
type Client struct {
	base        *http.Client
	baseURL     *url.URL
	rateLimiter *RateLimiter

	mu    sync.Mutex
	token string
	gh    *gh.Client
}

// NewClient creates a GitHub client on top of base. A nil base uses a
// client with DefaultHTTPTimeout.
func NewClient(base *http.Client) *Client {
	if base == nil {
		base = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{base: base, rateLimiter: NewRateLimiter()}
}

// SetBaseURL points the client at another API root, such as GitHub
// Enterprise or a test server. The URL must end in a slash.
func (c *Client) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = u
	c.gh = nil
	return nil
}

// forToken returns a go-github client authenticated with token.
func (c *Client) forToken(token string) *gh.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gh != nil && c.token == token {
		return c.gh
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	tc.Timeout = c.base.Timeout

	client := gh.NewClient(tc)
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	c.token = token
	c.gh = client
	return client
}

// SearchRepositories returns up to limit repositories matching query in
// best-match order.
func (c *Client) SearchRepositories(ctx context.Context, token, query string, limit int) ([]*gh.Repository, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{ListOptions: gh.ListOptions{PerPage: limit}}
	result, resp, err := c.forToken(token).Search.Repositories(ctx, query, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "search repositories")
	}

	repos := result.Repositories
	if len(repos) > limit {
		repos = repos[:limit]
	}
	return repos, nil
}

// RateLimiter returns the client's rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now().Add(time.Minute)
		if abuseErr.RetryAfter != nil {
			reset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: reset, Remaining: c.rateLimiter.Remaining()}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &APIError{StatusCode: ghErr.Response.StatusCode, Message: ghErr.Message}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
