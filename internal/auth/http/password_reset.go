package http

import (
	"net/http"

	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/authsdk"
	"github.com/qurehealth/qure/pkg/httpx"
)

const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

type ForgotPasswordHandler struct {
	PasswordResetService *service.PasswordResetService
	Errors               Errors
}

// ServeHTTP godoc
//
//	@Summary		Request password reset
//	@Description	Emails a single-use reset link valid for one hour. The response is identical whether or not the email is registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	authsdk.MessageResponse			"Generic confirmation"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/api/auth/forgot-password [post].
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	if err := h.PasswordResetService.RequestReset(r.Context(), req.Email); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, forgotPasswordMessage, nil)
}

type ResetPasswordHandler struct {
	PasswordResetService *service.PasswordResetService
	Errors               Errors
}

// ServeHTTP godoc
//
//	@Summary		Reset password
//	@Description	Consumes a reset token and sets a new password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ResetPasswordRequest	true	"Token from the reset link and the new password"
//	@Success		200		{object}	authsdk.MessageResponse			"Password changed"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Missing fields, weak password, or invalid, used or expired token"
//	@Router			/api/auth/reset-password [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	if err := h.PasswordResetService.ConfirmReset(r.Context(), req.Token, req.Password); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Password has been reset successfully", nil)
}
