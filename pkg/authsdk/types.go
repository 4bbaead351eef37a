package authsdk

import "time"

// ============================================================================
// Envelopes
// ============================================================================

// Response is the envelope every API endpoint answers with.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Error is only present on 500 responses from development servers.
	Error string `json:"error,omitempty"`
}

// MessageResponse is a success envelope without data.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ============================================================================
// Registration
// ============================================================================

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`

	// Role is "PATIENT" (default) or "STAFF"
	Role string `json:"role,omitempty"`

	// HospitalName is required for STAFF. The first staff member to name a
	// hospital creates it.
	HospitalName string `json:"hospitalName,omitempty"`

	Phone  *string `json:"phone,omitempty"`
	Gender *string `json:"gender,omitempty"`
}

// RegisteredUser is the data of a successful registration.
type RegisteredUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// RegisterResponse is the envelope returned by POST /api/auth/register.
type RegisterResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    RegisteredUser `json:"data"`
}

// ============================================================================
// Login
// ============================================================================

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	// Email holds an email address or a phone number
	Email    string `json:"email"`
	Password string `json:"password"`

	// Role is an optional hint; a mismatch fails like a wrong password
	Role string `json:"role,omitempty"`
}

// SessionUser is the account summary returned with a session token.
type SessionUser struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Role         string  `json:"role"`
	HospitalName *string `json:"hospitalName"`
	IsPrimary    bool    `json:"isPrimary"`
	IsVerified   bool    `json:"isVerified"`
}

// LoginData carries the session token.
type LoginData struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// LoginResponse is the envelope returned by POST /api/auth/login.
type LoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    LoginData `json:"data"`
}

// ============================================================================
// Authenticated user
// ============================================================================

// User is the sanitized account attached to authenticated requests.
type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        *string `json:"phone"`
	Gender       *string `json:"gender,omitempty"`
	HospitalName *string `json:"hospitalName"`
	HospitalID   *string `json:"hospitalId"`
	IsPrimary    bool    `json:"isPrimary"`
	IsVerified   bool    `json:"isVerified"`
}

// UserData wraps the user for /api/auth/me and the dashboards.
type UserData struct {
	User User `json:"user"`
}

// UserResponse is the envelope returned by /api/auth/me and the dashboards.
type UserResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    UserData `json:"data"`
}

// SessionData describes the caller of GET /api/session.
type SessionData struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// SessionResponse is the envelope returned by GET /api/session.
type SessionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    SessionData `json:"data"`
}

// ============================================================================
// Access verification
// ============================================================================

// VerifyAccessRequest is the body of POST /api/staff/verify-access.
type VerifyAccessRequest struct {
	AccessCode string `json:"accessCode"`
}

// ============================================================================
// Password reset
// ============================================================================

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ============================================================================
// Health
// ============================================================================

// StatusResponse is returned by GET /health.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the readiness of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// tokenLifetime is how long the server keeps a session token valid.
const tokenLifetime = 24 * time.Hour
