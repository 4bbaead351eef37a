package http

import (
	"net/http"

	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/authsdk"
	"github.com/qurehealth/qure/pkg/httpx"
)

type VerifyAccessHandler struct {
	AccessService *service.AccessService
	Errors        Errors
}

// ServeHTTP godoc
//
//	@Summary		Verify hospital access code
//	@Description	Marks a non-primary STAFF account as verified when the code matches its hospital's access code (case-insensitive).
//	@Tags			Staff
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.VerifyAccessRequest	true	"Access code"
//	@Success		200		{object}	authsdk.MessageResponse		"Access verified"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Missing or wrong code, already verified"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Not authenticated"
//	@Failure		403		{object}	authsdk.ErrorResponse		"Not staff"
//	@Router			/api/staff/verify-access [post].
func (h *VerifyAccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyAccessRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	caller, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.Errors.Write(w, r, service.ErrAuthRequired)
		return
	}

	if err := h.AccessService.VerifyAccessCode(r.Context(), caller, req.AccessCode); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Access verified successfully", nil)
}
