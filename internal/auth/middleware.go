package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/models"
)

type contextKey int

const identityKey contextKey = iota

// FromContext returns the identity attached by Authenticate.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// Authenticate rejects requests without a valid bearer token and attaches
// the token's identity to the request context.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		identity, err := m.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	})
}

// RequireRole gates a route to one role. Admins pass every gate.
func RequireRole(role models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			if identity.Role != role && identity.Role != models.RoleAdmin {
				http.Error(w, "access forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
