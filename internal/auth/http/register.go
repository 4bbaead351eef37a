package http

import (
	"net/http"

	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/authsdk"
	"github.com/qurehealth/qure/pkg/httpx"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
	Errors              Errors
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Create a PATIENT or STAFF account. The first STAFF member to name a hospital creates it, is verified immediately and receives the hospital access code by email.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RegisterRequest		true	"Account details"
//	@Success		201		{object}	authsdk.RegisterResponse	"id, firstName, lastName, email, role"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Validation failure"
//	@Failure		409		{object}	authsdk.ErrorResponse		"Email already registered"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	user, err := h.RegistrationService.Register(r.Context(), service.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		HospitalName: req.HospitalName,
		Phone:        req.Phone,
		Gender:       req.Gender,
	})
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "Registration successful", user)
}
