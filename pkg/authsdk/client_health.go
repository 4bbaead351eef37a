package authsdk

import (
	"context"
	"net/http"
)

// GetHealth calls the plain /health endpoint.
func (c *SDKClient) GetHealth(ctx context.Context) (*StatusResponse, error) {
	var status StatusResponse
	if err := c.call(ctx, http.MethodGet, "/health", nil, "", http.StatusOK, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.call(ctx, http.MethodGet, "/livez", nil, "", http.StatusOK, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.call(ctx, http.MethodGet, "/readyz", nil, "", http.StatusOK, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
