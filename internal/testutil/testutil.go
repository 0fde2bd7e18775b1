package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"gametracker/internal/httpx"
	"gametracker/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TestSecret   = "test-secret-key"
	TestUserID   = "0b6f3c5e-7a8d-4f3e-9c1a-2d4b6e8f0a11"
	TestUsername = "testuser"
	OtherUserID  = "9f1e2d3c-4b5a-4c6d-8e7f-0a1b2c3d4e5f"
)

// GenerateTestToken generates a JWT token for testing
func GenerateTestToken(secret, userID, username string) string {
	token, _, _ := crypto.GenerateToken(secret, crypto.Identity{
		UserID:   userID,
		Email:    username + "@example.com",
		Username: username,
	}, time.Hour)
	return token
}

// GenerateExpiredToken generates an expired JWT token for testing
func GenerateExpiredToken(secret, userID string) string {
	c := crypto.Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var r *http.Request
	if body != nil {
		var bodyBytes []byte
		if s, ok := body.(string); ok {
			bodyBytes = []byte(s)
		} else {
			bodyBytes, _ = json.Marshal(body)
		}
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// WithUser attaches an authenticated user to r the way AuthMiddleware does.
func WithUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID, TestUsername))
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode extracts error.code from an error envelope.
func (rr RecordResponse) ErrorCode() string {
	if e, ok := rr.Body["error"].(map[string]interface{}); ok {
		if code, ok := e["code"].(string); ok {
			return code
		}
	}
	return ""
}

// Data returns the data field of a success envelope.
func (rr RecordResponse) Data() interface{} {
	return rr.Body["data"]
}

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
