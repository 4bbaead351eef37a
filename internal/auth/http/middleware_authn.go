package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/httpx"
	"github.com/qurehealth/qure/pkg/slogx"
)

// Authenticator resolves a bearer token to the current user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

type principalKey struct{}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the user attached by Authenticate or
// OptionalAuthenticate.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// Authenticate requires a valid bearer token and attaches the token's user
// to the request context.
func Authenticate(a Authenticator, errs Errors) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok {
				errs.Write(w, r, service.ErrAuthRequired)
				return
			}

			p, err := a.Authenticate(r.Context(), token)
			if err != nil {
				errs.Write(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), p)))
		})
	}
}

// OptionalAuthenticate attaches the user when a valid bearer token is
// present and otherwise continues anonymously.
func OptionalAuthenticate(a Authenticator) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			p, err := a.Authenticate(r.Context(), token)
			if err != nil {
				slogx.FromContext(r.Context()).Debug("optional authentication failed", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), p)))
		})
	}
}

func withUser(ctx context.Context, p domain.Principal) context.Context {
	ctx = slogx.With(ctx, slog.String("user_id", p.ID))
	return WithPrincipal(ctx, p)
}
