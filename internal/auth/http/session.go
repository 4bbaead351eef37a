package http

import (
	"net/http"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/pkg/httpx"
)

type sessionData struct {
	Authenticated bool              `json:"authenticated"`
	User          *domain.Principal `json:"user,omitempty"`
}

// SessionHandler godoc
//
//	@Summary		Session status
//	@Description	Reports whether the request carries a valid session token. Never fails on a bad token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"authenticated, user"
//	@Router			/api/session [get].
func SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data sessionData
		if p, ok := PrincipalFromContext(r.Context()); ok {
			data.Authenticated = true
			data.User = &p
		}
		httpx.WriteSuccess(w, http.StatusOK, "Session status", data)
	}
}
