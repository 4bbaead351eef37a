package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string

	// Detail is the server-side error text, only sent by development servers.
	Detail string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authsdk: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("authsdk: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the error is a 401. The caller should log
// in again.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// IsForbidden reports whether the error is a 403.
func (e *APIError) IsForbidden() bool { return e.StatusCode == http.StatusForbidden }

// parseErrorResponse builds an APIError from a failed response body. Bodies
// that are not the API's error envelope fall back to the HTTP status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env ErrorResponse
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		apiErr.Message = env.Message
		apiErr.Detail = env.Error
		return apiErr
	}

	apiErr.Message = http.StatusText(resp.StatusCode)
	return apiErr
}
