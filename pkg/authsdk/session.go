package authsdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// ErrSessionExpired is returned by Session methods once the token's
// lifetime has passed. Log in again to continue.
var ErrSessionExpired = errors.New("authsdk: session expired")

// Session is an authenticated caller. Tokens are not refreshable.
type Session struct {
	client *SDKClient

	mu        sync.RWMutex
	token     string
	user      SessionUser
	expiresAt time.Time
}

// Token returns the bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the account summary from login. It is empty for sessions
// created with NewSessionFromToken.
func (s *Session) User() SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// getValidToken returns the token unless the session has expired locally.
func (s *Session) getValidToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if time.Now().After(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.token, nil
}

func (s *Session) call(ctx context.Context, method, path string, payload any, target any) error {
	token, err := s.getValidToken()
	if err != nil {
		return err
	}
	return s.client.call(ctx, method, path, payload, token, http.StatusOK, target)
}

func (s *Session) getUser(ctx context.Context, path string) (*User, error) {
	var out Response[UserData]
	if err := s.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data.User, nil
}

// Me returns the current user as the server sees it now.
func (s *Session) Me(ctx context.Context) (*User, error) {
	return s.getUser(ctx, "/api/auth/me")
}

// PatientDashboard requires a PATIENT session.
func (s *Session) PatientDashboard(ctx context.Context) (*User, error) {
	return s.getUser(ctx, "/api/patient/dashboard")
}

// StaffDashboard requires a verified STAFF session.
func (s *Session) StaffDashboard(ctx context.Context) (*User, error) {
	return s.getUser(ctx, "/api/staff/dashboard")
}

// VerifyAccess submits the hospital access code for a non-primary STAFF
// account.
func (s *Session) VerifyAccess(ctx context.Context, accessCode string) error {
	return s.call(ctx, http.MethodPost, "/api/staff/verify-access", VerifyAccessRequest{AccessCode: accessCode}, nil)
}

// Info returns what the server knows about this session.
func (s *Session) Info(ctx context.Context) (*SessionData, error) {
	token, err := s.getValidToken()
	if err != nil {
		return nil, err
	}
	return s.client.GetSession(ctx, token)
}
