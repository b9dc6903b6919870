package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rakatama/koperasi-admin/internal/platform/session"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// TokenKey is the context key for the upstream bearer token
	TokenKey ContextKey = "upstream_token"
	// UsernameKey is the context key for the logged-in username
	UsernameKey ContextKey = "username"
)

// SessionResolver looks up a panel session by id
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
}

// SessionAuth validates the panel's bearer session id and injects the
// upstream token into the request context. The upstream token itself is
// opaque: no claims are inspected and no role is derived here.
func SessionAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			sess, err := resolver.Resolve(r.Context(), parts[1])
			if err != nil {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, sess.Token)
			ctx = context.WithValue(ctx, UsernameKey, sess.Username)
			ctx = context.WithValue(ctx, ContextKey("session_id"), sess.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTokenFromContext extracts the upstream token from the request context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// GetUsernameFromContext extracts the username from the request context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetSessionIDFromContext extracts the panel session id
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKey("session_id")).(string)
	return id, ok
}
