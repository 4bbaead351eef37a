package service

import (
	"errors"
	"strings"
)

// Kind classifies a service error. Handlers map kinds to status codes.
type Kind int

const (
	KindValidation    Kind = iota + 1 // 400, client-fixable input
	KindConflict                      // 409
	KindAuth                          // 401, deliberately generic
	KindAuthorization                 // 403
	KindNotFound                      // 404
	KindConfiguration                 // 500, server misconfigured
	KindTransient                     // delivery failures; never surfaced
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error is a classified error whose Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) kind() Kind { return e.Kind }

type kinded interface {
	error
	kind() Kind
}

// KindOf returns the Kind of the first classified error in err's chain.
// ok is false for unclassified (unexpected) errors.
func KindOf(err error) (k Kind, ok bool) {
	var ke kinded
	if errors.As(err, &ke) {
		return ke.kind(), true
	}
	return 0, false
}

// MissingFieldsError lists the required registration fields that were
// absent or blank, in request order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) kind() Kind { return KindValidation }

// Registration
var (
	ErrInvalidRole        = &Error{KindValidation, "Invalid role selected"}
	ErrInvalidEmailFormat = &Error{KindValidation, "Please provide a valid email address"}
	ErrWeakPassword       = &Error{KindValidation, "Password must be at least 8 characters and include uppercase, lowercase, number, and special character"}
	ErrEmailAlreadyExists = &Error{KindConflict, "An account with this email already exists"}
)

// Login and session
var (
	ErrCredentialsRequired = &Error{KindValidation, "Email or phone number and password are required"}
	ErrInvalidCredentials  = &Error{KindAuth, "Invalid email or phone number or password"}
	ErrConfiguration       = &Error{KindConfiguration, "Server configuration error"}

	ErrAuthRequired   = &Error{KindAuth, "Authentication required. Please log in."}
	ErrSessionExpired = &Error{KindAuth, "Session expired. Please log in again."}
	ErrInvalidToken   = &Error{KindAuth, "Invalid authentication token. Please log in again."}
	ErrUserNotFound   = &Error{KindAuth, "User not found. Please log in again."}

	ErrRoleForbidden    = &Error{KindAuthorization, "Access denied. You do not have permission to access this resource."}
	ErrStaffNotVerified = &Error{KindAuthorization, "Hospital access code required"}
)

// Access verification
var (
	ErrMissingAccessCode = &Error{KindValidation, "Access code is required"}
	ErrForbidden         = &Error{KindAuthorization, "Access denied"}
	ErrAlreadyVerified   = &Error{KindValidation, "Access already verified"}
	ErrNoHospitalLinked  = &Error{KindValidation, "Hospital record not found. Please contact support."}
	ErrHospitalNotFound  = &Error{KindValidation, "Hospital record not found. Please contact support."}
	ErrInvalidAccessCode = &Error{KindValidation, "Invalid hospital access code"}
)

// Password reset
var (
	ErrResetFieldsRequired   = &Error{KindValidation, "Token and new password are required"}
	ErrInvalidOrExpiredToken = &Error{KindValidation, "Invalid or expired reset token"}
	ErrTokenAlreadyUsed      = &Error{KindValidation, "This reset link has already been used"}
	ErrTokenExpired          = &Error{KindValidation, "This reset link has expired. Please request a new one."}
)

// ErrDelivery wraps outbound mail failures. It is logged and swallowed.
var ErrDelivery = &Error{KindTransient, "Email delivery failed"}
