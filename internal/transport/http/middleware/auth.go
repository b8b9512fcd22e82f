package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ceidigital/backoffice/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// UserDirectory is the lookup the authentication gate needs to rebuild a
// principal's authorities on every request.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenVerifier checks a bearer token's signature, expiry and subject.
type TokenVerifier interface {
	ExtractSubject(token string) (string, error)
	Verify(token, expectedSubject string) bool
}

// Authenticate returns the pass-through authentication gate: it attaches a
// principal to the request context when a valid Bearer token names an
// existing active user, and otherwise lets the request continue
// unauthenticated. Rejecting requests is the job of RequireAuthority, not
// of this middleware.
func Authenticate(users UserDirectory, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			// A malformed or forged token is treated the same as no token.
			subject, err := verifier.ExtractSubject(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			u, err := users.GetByEmail(r.Context(), subject)
			if err != nil || !u.Active || !verifier.Verify(token, u.Email) {
				next.ServeHTTP(w, r)
				return
			}
			p := domain.NewPrincipal(u.Email, u.Roles)
			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return token, token != ""
}

// PrincipalFromContext extracts the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok
}
