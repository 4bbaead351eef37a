package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/store"
	"github.com/qurehealth/qure/pkg/cryptox"
	"github.com/qurehealth/qure/pkg/idx"
	"github.com/qurehealth/qure/pkg/slogx"
)

// DefaultResetTokenTTL is how long a reset link stays usable.
const DefaultResetTokenTTL = time.Hour

type PasswordResetService struct {
	Store    store.Store
	Notifier *Notifier
	TokenTTL time.Duration
	Metrics  *Metrics

	// now is overridable in tests.
	now func() time.Time
}

func (s *PasswordResetService) clock() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

func (s *PasswordResetService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultResetTokenTTL
}

// RequestReset issues a reset token for the account with this email and
// mails the link. Unknown or malformed emails succeed silently so callers
// cannot probe for accounts. Any earlier unused token is invalidated.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	err := s.requestReset(ctx, email)
	s.Metrics.reset("request", err)
	return err
}

func (s *PasswordResetService) requestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if !IsValidEmail(email) {
		return nil
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	raw, err := cryptox.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	now := s.clock()
	rec := domain.PasswordResetToken{
		ID:        idx.NewAt(now).String(),
		TokenHash: cryptox.FingerprintToken(raw),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResetTokens().InvalidateActivePasswordResetTokens(ctx, user.ID, now); err != nil {
			return fmt.Errorf("invalidate reset tokens: %w", err)
		}
		if err := tx.PasswordResetTokens().CreatePasswordResetToken(ctx, rec); err != nil {
			return fmt.Errorf("create reset token: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("password reset issued", slog.String("user_id", user.ID), slog.String("reset_id", rec.ID))

	if err := s.Notifier.PasswordReset(ctx, user.Email, user.FirstName, raw); err != nil {
		log.Warn("password reset email not delivered",
			slog.String("user_id", user.ID), slog.Any("error", err))
	}
	return nil
}

// ConfirmReset consumes a reset token and sets the new password. The token
// is consumed and the password changed in one transaction; a token that a
// concurrent request consumed first yields ErrTokenAlreadyUsed.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	err := s.confirmReset(ctx, token, newPassword)
	s.Metrics.reset("confirm", err)
	return err
}

func (s *PasswordResetService) confirmReset(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" || newPassword == "" {
		return ErrResetFieldsRequired
	}
	if !IsStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	rec, err := s.Store.PasswordResetTokens().GetPasswordResetTokenByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	now := s.clock()
	switch {
	case rec.Used:
		return ErrTokenAlreadyUsed
	case rec.IsExpired(now):
		return ErrTokenExpired
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResetTokens().ConsumePasswordResetToken(ctx, rec.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTokenAlreadyUsed
			}
			return fmt.Errorf("consume reset token: %w", err)
		}
		if err := tx.Users().UpdatePasswordHash(ctx, rec.UserID, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidOrExpiredToken
			}
			return fmt.Errorf("update password: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("password reset completed", slog.String("user_id", rec.UserID), slog.String("reset_id", rec.ID))
	return nil
}
