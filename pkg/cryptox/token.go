package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// ResetTokenSize is the entropy of a password-reset token (64 hex chars).
	ResetTokenSize = 32
	// AccessCodeSize is the entropy of a hospital access code (8 hex chars).
	AccessCodeSize = 4
)

// GenerateHexToken returns size random bytes as a lowercase hex string.
func GenerateHexToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateResetToken returns a fresh 64-char hex password-reset token.
func GenerateResetToken() (string, error) {
	return GenerateHexToken(ResetTokenSize)
}

// GenerateAccessCode returns an 8-char uppercase hex hospital access code,
// e.g. "A1B2C3D4".
func GenerateAccessCode() (string, error) {
	code, err := GenerateHexToken(AccessCodeSize)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(code), nil
}

// NormalizeAccessCode trims and upper-cases a code for comparison.
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// AccessCodesEqual compares two access codes ignoring case and surrounding
// whitespace, in constant time.
func AccessCodesEqual(submitted, stored string) bool {
	a := NormalizeAccessCode(submitted)
	b := NormalizeAccessCode(stored)
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// Opaque tokens are stored by fingerprint so a database leak does not
// expose usable tokens.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
