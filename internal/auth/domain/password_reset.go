package domain

import "time"

// PasswordResetToken is a single-use reset credential. Only the SHA-256
// fingerprint of the token is stored.
type PasswordResetToken struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the token is past its expiry at now.
func (t PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
