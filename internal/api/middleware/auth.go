package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// UserResolver resolves a bearer token to the account it was issued for.
type UserResolver interface {
	ResolveAccessToken(ctx context.Context, tokenString string) (*domain.User, error)
}

// AuthMiddleware authenticates requests using bearer tokens.
type AuthMiddleware struct {
	resolver UserResolver
}

// NewAuthMiddleware creates an AuthMiddleware backed by resolver.
func NewAuthMiddleware(resolver UserResolver) *AuthMiddleware {
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate validates the Authorization header and places the resolved
// user in the request context. Every failure mode (missing header, bad
// format, invalid or expired token, wrong token kind, deleted account)
// yields the same 401 so callers learn nothing about why.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		user, err := m.resolver.ResolveAccessToken(r.Context(), token)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Could not validate credentials", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
