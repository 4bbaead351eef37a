package authsdk

import (
	"context"
	"net/http"
	"time"
)

// Register creates a PATIENT or STAFF account.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisteredUser, error) {
	var out Response[RegisteredUser]
	if err := c.call(ctx, http.MethodPost, "/api/auth/register", req, "", http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Login authenticates with an email address or phone number and returns a
// Session holding the issued token. role may be empty.
func (c *SDKClient) Login(ctx context.Context, identifier, password, role string) (*Session, error) {
	req := LoginRequest{Email: identifier, Password: password, Role: role}

	var out Response[LoginData]
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", req, "", http.StatusOK, &out); err != nil {
		return nil, err
	}

	return &Session{
		client:    c,
		token:     out.Data.Token,
		user:      out.Data.User,
		expiresAt: time.Now().Add(tokenLifetime),
	}, nil
}

// ForgotPassword asks the server to email a reset link. It succeeds
// whether or not the address belongs to an account.
func (c *SDKClient) ForgotPassword(ctx context.Context, email string) error {
	req := ForgotPasswordRequest{Email: email}
	return c.call(ctx, http.MethodPost, "/api/auth/forgot-password", req, "", http.StatusOK, nil)
}

// ResetPassword sets a new password using the token from the reset link.
func (c *SDKClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	req := ResetPasswordRequest{Token: token, Password: newPassword}
	return c.call(ctx, http.MethodPost, "/api/auth/reset-password", req, "", http.StatusOK, nil)
}

// GetSession reports whether token (which may be empty) identifies a user.
// Invalid tokens yield an anonymous session rather than an error.
func (c *SDKClient) GetSession(ctx context.Context, token string) (*SessionData, error) {
	var out Response[SessionData]
	if err := c.call(ctx, http.MethodGet, "/api/session", nil, token, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
