package http

import (
	"net/http"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/httpx"
)

// UserHandler answers with the authenticated user. It backs /api/auth/me
// and both dashboards, which differ only in their message and guards.
type UserHandler struct {
	Message string
	Errors  Errors
}

type userData struct {
	User domain.Principal `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Current user
//	@Description	Returns the authenticated user, re-read from the store on every request.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"user"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Missing, invalid or expired token"
//	@Router			/api/auth/me [get].
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.Errors.Write(w, r, service.ErrAuthRequired)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, h.Message, userData{User: p})
}

// PatientDashboard godoc
//
//	@Summary		Patient dashboard
//	@Tags			Dashboards
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"user"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Not authenticated"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Not a patient"
//	@Router			/api/patient/dashboard [get].
func PatientDashboard(errs Errors) *UserHandler {
	return &UserHandler{Message: "Access granted to patient dashboard", Errors: errs}
}

// StaffDashboard godoc
//
//	@Summary		Staff dashboard
//	@Description	Requires a STAFF account that has been verified with the hospital access code.
//	@Tags			Dashboards
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"user"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Not authenticated"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Not staff, or access code not yet verified"
//	@Router			/api/staff/dashboard [get].
func StaffDashboard(errs Errors) *UserHandler {
	return &UserHandler{Message: "Access granted to staff dashboard", Errors: errs}
}
