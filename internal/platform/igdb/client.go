package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gametracker/internal/metrics"

	"golang.org/x/time/rate"
)

// maxAttempts bounds the 401 recovery: the first call plus one retry with a
// freshly exchanged token.
const maxAttempts = 2

// TokenSource is satisfied by *TokenManager.
type TokenSource interface {
	GetValidToken(ctx context.Context) (AccessToken, error)
	Invalidate()
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	tokens     TokenSource
	limiter    *rate.Limiter
}

// NewClient paces outbound calls at rps requests per second; rps <= 0
// disables pacing.
func NewClient(httpClient *http.Client, baseURL, clientID string, tokens TokenSource, rps float64) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(math.Ceil(rps)))
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		tokens:     tokens,
		limiter:    limiter,
	}
}

// Query posts body to the given endpoint and decodes the returned records.
//
// A 401 invalidates the token and retries once; a second 401 is
// ErrAuthFailure. A 429 is ErrRateLimited. Any other failure is
// ErrCatalogUnavailable. Token exchange errors propagate unchanged.
func (c *Client) Query(ctx context.Context, endpoint, body string) ([]RawGame, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		token, err := c.tokens.GetValidToken(ctx)
		if err != nil {
			return nil, err
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}

		start := time.Now()
		records, status, err := c.do(ctx, endpoint, body, token.Value)
		metrics.RecordCatalogRequest(endpoint, outcome(status, err), time.Since(start).Seconds())

		switch {
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		case status == http.StatusUnauthorized:
			c.tokens.Invalidate()
			if attempt < maxAttempts {
				slog.Warn("catalog rejected token, retrying with a fresh one", "endpoint", endpoint)
			}
			continue
		case status == http.StatusTooManyRequests:
			return nil, ErrRateLimited
		case status < 200 || status > 299:
			return nil, fmt.Errorf("%w: %s returned %d", ErrCatalogUnavailable, endpoint, status)
		}
		return records, nil
	}
	return nil, fmt.Errorf("%w: %s rejected a freshly issued token", ErrAuthFailure, endpoint)
}

// do returns a non-nil error only for transport or decode failures.
func (c *Client) do(ctx context.Context, endpoint, body, token string) ([]RawGame, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, strings.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, nil
	}

	var records []RawGame
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return records, resp.StatusCode, nil
}

func outcome(status int, err error) string {
	switch {
	case err != nil:
		return "error"
	case status == http.StatusUnauthorized:
		return "unauthorized"
	case status == http.StatusTooManyRequests:
		return "rate_limited"
	case status >= 200 && status <= 299:
		return "ok"
	default:
		return "error"
	}
}
