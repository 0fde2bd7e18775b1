package httpx

import (
	"net/http"
	"strings"

	"gametracker/internal/platform/crypto"
)

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Access token required", nil)
				return
			}

			claims, err := crypto.ParseToken(secret, token)
			if err != nil {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.Sub, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present and
// otherwise serves the request anonymously.
func OptionalAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := crypto.ParseToken(secret, token); err == nil {
					r = r.WithContext(ContextWithUser(r.Context(), claims.Sub, claims.Username))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
