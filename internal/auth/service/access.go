package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/store"
	"github.com/qurehealth/qure/pkg/cryptox"
	"github.com/qurehealth/qure/pkg/slogx"
)

type AccessService struct {
	Store   store.Store
	Metrics *Metrics
}

// VerifyAccessCode marks a non-primary STAFF caller verified when code
// matches their hospital's access code. Comparison ignores case and
// surrounding whitespace.
func (s *AccessService) VerifyAccessCode(ctx context.Context, caller domain.Principal, code string) error {
	err := s.verify(ctx, caller, code)
	s.Metrics.accessCheck(err)
	return err
}

func (s *AccessService) verify(ctx context.Context, caller domain.Principal, code string) error {
	log := slogx.FromContext(ctx)

	if blank(code) {
		return ErrMissingAccessCode
	}
	if caller.Role != domain.RoleStaff {
		return ErrForbidden
	}
	if caller.IsVerified {
		return ErrAlreadyVerified
	}
	if caller.HospitalID == nil || *caller.HospitalID == "" {
		log.Warn("staff account has no hospital", slog.String("user_id", caller.ID))
		return ErrNoHospitalLinked
	}

	h, err := s.Store.Hospitals().GetHospitalByID(ctx, *caller.HospitalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Error("staff account references missing hospital",
				slog.String("user_id", caller.ID),
				slog.String("hospital_id", *caller.HospitalID),
			)
			return ErrHospitalNotFound
		}
		return fmt.Errorf("load hospital: %w", err)
	}

	if !cryptox.AccessCodesEqual(code, h.AccessCode) {
		log.Info("access code rejected", slog.String("user_id", caller.ID))
		return ErrInvalidAccessCode
	}

	if err := s.Store.Users().MarkVerified(ctx, caller.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("mark verified: %w", err)
	}

	log.Info("staff access verified",
		slog.String("user_id", caller.ID),
		slog.String("hospital_id", h.ID),
	)
	return nil
}
