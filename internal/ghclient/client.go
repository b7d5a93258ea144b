// Package ghclient talks to the GitHub REST and GraphQL APIs.
package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/reposcore/reposcore/internal/log"
)

// rateLimitTransport wraps an http.RoundTripper to observe GitHub rate
// limit headers and short-circuit requests once the quota is exhausted.
type rateLimitTransport struct {
	base http.RoundTripper
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if globalRateLimitState.IsLimited() {
		return nil, ErrRateLimited
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining >= 0 && limit > 0 {
		globalRateLimitState.Update(remaining, limit, resetAt)
	}

	if remaining <= RateLimitLowWatermark && remaining > 0 {
		log.Debug("rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.StatusCode == http.StatusTooManyRequests {
			globalRateLimitState.SetLimited(true, resetAt)
			_ = resp.Body.Close()
			return nil, ErrRateLimited
		}
	}

	return resp, err
}

// Client wraps the GitHub REST client plus the GraphQL executor used by
// the scoring pipeline.
type Client struct {
	client *gh.Client
	// token is intentionally unexported. NEVER add String(), MarshalJSON(),
	// or any method that could expose this value in logs or serialized output.
	token string

	graphqlClient *http.Client
	graphqlURL    string

	// now is the clock for the rolling contribution window; tests inject
	// a frozen time here.
	now func() time.Time
}

// NewClient creates a client using a personal access token. An empty
// token falls back to the GITHUB_TOKEN environment variable.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GitHub token not provided. Set the GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	tc.Transport = &rateLimitTransport{
		base: tc.Transport,
	}

	return &Client{
		client: gh.NewClient(tc),
		token:  token,
		graphqlClient: &http.Client{
			Transport: &rateLimitTransport{
				base: &http.Transport{
					MaxIdleConns:        20,
					MaxIdleConnsPerHost: 20,
					IdleConnTimeout:     30 * time.Second,
				},
			},
			Timeout: 30 * time.Second,
		},
		graphqlURL: graphqlEndpoint,
		now:        time.Now,
	}, nil
}

// AuthenticatedUser returns the authenticated user's login.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}
