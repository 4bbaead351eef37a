package http

import (
	"net/http"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/httpx"
)

// RequireRole admits only users with the given role. It must run after
// Authenticate.
func RequireRole(role domain.Role, errs Errors) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				errs.Write(w, r, service.ErrAuthRequired)
				return
			}
			if p.Role != role {
				errs.Write(w, r, service.ErrRoleForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaffVerified blocks STAFF users who have not yet entered their
// hospital access code. Other roles pass through.
func RequireStaffVerified(errs Errors) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				errs.Write(w, r, service.ErrAuthRequired)
				return
			}
			if p.Role == domain.RoleStaff && !p.IsVerified {
				errs.Write(w, r, service.ErrStaffNotVerified)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
