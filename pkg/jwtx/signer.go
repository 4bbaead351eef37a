package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// HS256Signer signs session tokens with a shared HMAC secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer. An empty secret is accepted here
// so the service can start; every Sign call then fails with
// ErrMissingSecret. Call Validate at startup to surface the problem early.
func NewSignerHS256(secret string) *HS256Signer {
	return &HS256Signer{secret: []byte(secret)}
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate reports whether a signing secret is configured.
func (s *HS256Signer) Validate() error {
	if s == nil || len(s.secret) == 0 {
		return ErrMissingSecret
	}
	return nil
}
