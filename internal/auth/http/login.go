package http

import (
	"net/http"

	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/authsdk"
	"github.com/qurehealth/qure/pkg/httpx"
)

type LoginHandler struct {
	SessionService *service.SessionService
	Errors         Errors
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Authenticate with an email address or phone number and receive a 24 hour HS256 session token.
//	@Description	Unknown accounts, wrong passwords and role mismatches all produce the same 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"Credentials; email may hold a phone number"
//	@Success		200		{object}	authsdk.LoginResponse	"token, user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing credentials"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Server configuration error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	res, err := h.SessionService.Login(r.Context(), service.LoginInput{
		Identifier: req.Email,
		Password:   req.Password,
		Role:       req.Role,
	})
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Login successful", res)
}
