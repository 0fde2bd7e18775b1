package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	usernameKey  contextKey = "username"
	requestIDKey contextKey = "requestID"
)

// UserIDFrom retrieves the authenticated user ID from the request context.
func UserIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

func UsernameFrom(r *http.Request) string {
	if v, ok := r.Context().Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUser returns a new context carrying the user identity.
func ContextWithUser(ctx context.Context, userID, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
