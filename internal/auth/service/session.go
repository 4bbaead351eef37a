package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/store"
	"github.com/qurehealth/qure/pkg/cryptox"
	"github.com/qurehealth/qure/pkg/jwtx"
	"github.com/qurehealth/qure/pkg/slogx"
)

// LoginInput identifies the account by email or phone number. Role is an
// optional hint; a mismatch fails like a wrong password.
type LoginInput struct {
	Identifier string
	Password   string
	Role       string
}

// SessionUser is the account projection returned with a session token.
type SessionUser struct {
	ID           string      `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	Phone        *string     `json:"phone"`
	Role         domain.Role `json:"role"`
	HospitalName *string     `json:"hospitalName"`
	IsPrimary    bool        `json:"isPrimary"`
	IsVerified   bool        `json:"isVerified"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

type SessionService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	Metrics  *Metrics
}

// Login checks credentials and issues a signed session token.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	res, err := s.login(ctx, in)
	s.Metrics.login(err)
	return res, err
}

func (s *SessionService) login(ctx context.Context, in LoginInput) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	if blank(in.Identifier) || in.Password == "" {
		return LoginResult{}, ErrCredentialsRequired
	}

	user, err := s.lookup(ctx, in.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnVerify(in.Password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if hint := strings.TrimSpace(in.Role); hint != "" && domain.Role(hint) != user.Role {
		burnVerify(in.Password)
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(in.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unreadable",
				slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	if s.Signer == nil || s.Signer.Validate() != nil {
		log.Error("session signing unavailable: JWT_SECRET is not configured")
		return LoginResult{}, ErrConfiguration
	}

	s.upgradeHash(ctx, user, in.Password)

	claims := jwtx.NewSessionClaims(user.ID, user.Email, string(user.Role), jwtx.DefaultSessionTTL, s.Issuer, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.String("user_id", user.ID), slog.Any("error", err))
		return LoginResult{}, ErrConfiguration
	}

	log.Info("user logged in", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))

	return LoginResult{
		Token: token,
		User: SessionUser{
			ID:           user.ID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Email:        user.Email,
			Phone:        user.Phone,
			Role:         user.Role,
			HospitalName: user.HospitalName,
			IsPrimary:    user.IsPrimary,
			IsVerified:   user.IsVerified,
		},
	}, nil
}

// lookup treats identifiers shaped like an email as one, and anything
// else as a phone number.
func (s *SessionService) lookup(ctx context.Context, identifier string) (domain.User, error) {
	if email := NormalizeEmail(identifier); IsValidEmail(email) {
		return s.Store.Users().GetUserByEmail(ctx, email)
	}
	return s.Store.Users().GetUserByPhone(ctx, strings.TrimSpace(identifier))
}

// upgradeHash replaces legacy or outdated hashes after a successful login.
// Failures only cost another upgrade attempt next time.
func (s *SessionService) upgradeHash(ctx context.Context, user domain.User, password string) {
	if !cryptox.NeedsRehash(user.PasswordHash) {
		return
	}
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err == nil {
		err = s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		log.Warn("password hash upgrade failed", slog.String("user_id", user.ID), slog.Any("error", err))
		return
	}
	log.Info("password hash upgraded", slog.String("user_id", user.ID))
}

// Authenticate verifies a bearer token and re-reads its user, so deleted
// accounts and changed roles take effect before the token expires.
func (s *SessionService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	p, err := s.authenticate(ctx, token)
	s.Metrics.authn(err)
	return p, err
}

func (s *SessionService) authenticate(ctx context.Context, token string) (domain.Principal, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(token) == "" {
		return domain.Principal{}, ErrAuthRequired
	}
	if s.Verifier == nil {
		log.Error("session verification unavailable: JWT_SECRET is not configured")
		return domain.Principal{}, ErrConfiguration
	}

	claims, err := s.Verifier.Verify(token)
	switch {
	case err == nil:
	case errors.Is(err, jwtx.ErrMissingSecret):
		log.Error("session verification unavailable: JWT_SECRET is not configured")
		return domain.Principal{}, ErrConfiguration
	case errors.Is(err, jwtx.ErrExpired):
		return domain.Principal{}, ErrSessionExpired
	default:
		log.Debug("session token rejected", slog.Any("error", err))
		return domain.Principal{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrUserNotFound
		}
		return domain.Principal{}, fmt.Errorf("load session user: %w", err)
	}
	return user.Principal(), nil
}

var (
	burnOnce sync.Once
	burnHash string
)

// burnVerify spends the same work as a real password check so unknown
// accounts cannot be told apart by response time.
func burnVerify(password string) {
	burnOnce.Do(func() {
		burnHash, _ = cryptox.HashPassword("timing-equaliser")
	})
	if burnHash != "" {
		_ = cryptox.VerifyPassword(password, burnHash)
	}
}
