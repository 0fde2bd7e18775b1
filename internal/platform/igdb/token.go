package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gametracker/internal/metrics"
)

// AccessToken is a bearer token for the catalog provider.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TokenManager caches one client-credentials token and exchanges a new one
// when it is missing or expired. Concurrent callers that both see an expired
// token may both exchange; the last writer wins.
type TokenManager struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	now          func() time.Time

	mu    sync.RWMutex
	token *AccessToken
}

type TokenOption func(*TokenManager)

// WithTokenClock replaces time.Now.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(httpClient *http.Client, tokenURL, clientID, clientSecret string, opts ...TokenOption) *TokenManager {
	m := &TokenManager{
		httpClient:   httpClient,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetValidToken returns the cached token while now < ExpiresAt, otherwise
// performs one exchange. Exchange failures are not retried.
func (m *TokenManager) GetValidToken(ctx context.Context) (AccessToken, error) {
	m.mu.RLock()
	cached := m.token
	m.mu.RUnlock()

	if cached != nil && m.now().Before(cached.ExpiresAt) {
		return *cached, nil
	}

	fresh, err := m.exchange(ctx)
	if err != nil {
		metrics.RecordTokenRefresh("error")
		return AccessToken{}, err
	}
	metrics.RecordTokenRefresh("ok")

	m.mu.Lock()
	m.token = &fresh
	m.mu.Unlock()

	slog.Info("catalog token refreshed", "expires_at", fresh.ExpiresAt.UTC().Format(time.RFC3339))
	return fresh, nil
}

// Invalidate drops the cached token so the next call exchanges a new one.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.token = nil
	m.mu.Unlock()
}

func (m *TokenManager) exchange(ctx context.Context) (AccessToken, error) {
	form := url.Values{}
	form.Set("client_id", m.clientID)
	form.Set("client_secret", m.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: %w", ErrAuthFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return AccessToken{}, fmt.Errorf("%w: token request: %w", ErrAuthFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return AccessToken{}, fmt.Errorf("%w: token endpoint returned %d: %s",
			ErrAuthFailure, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return AccessToken{}, fmt.Errorf("%w: decode token response: %w", ErrAuthFailure, err)
	}
	if body.AccessToken == "" || body.ExpiresIn <= 0 {
		return AccessToken{}, fmt.Errorf("%w: token response missing access_token or expires_in", ErrAuthFailure)
	}

	return AccessToken{
		Value:     body.AccessToken,
		ExpiresAt: m.now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
