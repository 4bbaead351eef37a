package http

import (
	"net/http"
	"time"

	"github.com/qurehealth/qure/pkg/authsdk"
	"github.com/qurehealth/qure/pkg/httpx"
)

// HealthHandler godoc
//
//	@Summary		API status
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.StatusResponse	"status, message"
//	@Router			/health [get].
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.StatusResponse{
			Status:  "ok",
			Message: "Qure API is running",
		})
	}
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
