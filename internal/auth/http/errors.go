package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/pkg/httpx"
	"github.com/qurehealth/qure/pkg/slogx"
)

const invalidJSONMessage = "Request body must be valid JSON"

// Errors renders failures as {success:false, message} envelopes. With
// Expose set, 500 responses also carry the underlying error text.
type Errors struct {
	Expose bool
}

// statusFor maps a service error kind to its HTTP status.
func statusFor(k service.Kind) int {
	switch k {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindAuth:
		return http.StatusUnauthorized
	case service.KindAuthorization:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Write classifies err and writes the matching response. Unclassified
// errors are logged and answered with a generic 500.
func (e Errors) Write(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	if errors.Is(err, httpx.ErrInvalidJSON) {
		httpx.WriteError(w, http.StatusBadRequest, invalidJSONMessage)
		return
	}

	kind, ok := service.KindOf(err)
	if ok && kind != service.KindTransient {
		status := statusFor(kind)
		if status >= http.StatusInternalServerError {
			e.internal(w, err, err.Error())
			return
		}
		httpx.WriteError(w, status, err.Error())
		return
	}

	log.Error("unexpected error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	e.internal(w, err, httpx.InternalErrorMessage)
}

func (e Errors) internal(w http.ResponseWriter, err error, message string) {
	body := httpx.Envelope{Success: false, Message: message}
	if e.Expose {
		body.Error = err.Error()
	}
	httpx.WriteJSON(w, http.StatusInternalServerError, body)
}

// NotFoundHandler answers every unmatched route.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "Endpoint not found")
	}
}
