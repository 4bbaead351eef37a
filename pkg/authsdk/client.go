package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Qure authentication API.
// It provides access to public operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new API client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSessionFromToken creates a Session from a token obtained elsewhere,
// e.g. one persisted by a previous run.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{
		client:    c,
		token:     token,
		expiresAt: time.Now().Add(tokenLifetime),
	}
}
