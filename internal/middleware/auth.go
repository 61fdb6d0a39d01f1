package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jaydenbeard/gotham-ecdsa/internal/auth"
	"github.com/jaydenbeard/gotham-ecdsa/internal/metrics"
)

type contextKey string

const customerIDKey contextKey = "customer_id"

// AuthMiddleware validates bearer tokens and binds the caller's customer id
// into the request context before the handler runs.
func AuthMiddleware(verifier *auth.Verifier, skipAuth func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipAuth != nil && skipAuth(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				metrics.RecordAuthAttempt(false)
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				metrics.RecordAuthAttempt(false)
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.ParseClaims(parts[1])
			if err != nil {
				metrics.RecordAuthAttempt(false)
				if err == auth.ErrTokenExpired {
					http.Error(w, "Token expired", http.StatusUnauthorized)
				} else {
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				}
				return
			}

			metrics.RecordAuthAttempt(true)
			ctx := context.WithValue(r.Context(), customerIDKey, claims.CustomerID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerID extracts the authenticated customer id from the request context.
func CustomerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerIDKey).(string)
	return id, ok
}
