// Package middleware provides HTTP middlewares for authentication, CORS,
// and request logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "jwt"

// TokenVerifier resolves a session token to the identity it was issued
// for, failing for missing, malformed, expired, or badly signed tokens.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth returns a middleware that enforces cookie-based session
// authentication.
//
// It reads the session cookie, verifies the token, and stores the
// resolved identity in the request context so downstream handlers can
// use it as the authenticated username. Requests without a valid token
// are rejected with 401.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				http.Error(w, "Unauthorized: JWT token missing", http.StatusUnauthorized)
				return
			}
			identity, err := verifier.Verify(cookie.Value)
			if err != nil {
				http.Error(w, "Unauthorized: Invalid or expired token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated username from the request
// context. Returns an empty string if not found.
func GetUserFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
