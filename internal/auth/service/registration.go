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

// errHospitalRace aborts the founding transaction when another registration
// created the same hospital first.
var errHospitalRace = errors.New("hospital created concurrently")

// RegisterInput is the registration request. Role defaults to PATIENT.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Role         string
	HospitalName string
	Phone        *string
	Gender       *string
}

// RegisteredUser is what a successful registration returns.
type RegisteredUser struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

type RegistrationService struct {
	Store    store.Store
	Notifier *Notifier
	Metrics  *Metrics
}

// Register validates the input and creates the account. The first STAFF
// member to name a hospital creates it, becomes its primary member and is
// verified immediately; the access code is then emailed to them. Later
// staff join the existing hospital unverified.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (RegisteredUser, error) {
	out, err := s.register(ctx, in)

	label := "invalid"
	if role, ok := domain.ParseRole(in.Role); ok {
		label = string(role)
	}
	s.Metrics.registration(label, err)
	return out, err
}

func (s *RegistrationService) register(ctx context.Context, in RegisterInput) (RegisteredUser, error) {
	log := slogx.FromContext(ctx)

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return RegisteredUser{}, ErrInvalidRole
	}

	if missing := missingRegistrationFields(in, role); len(missing) > 0 {
		return RegisteredUser{}, &MissingFieldsError{Fields: missing}
	}

	email := NormalizeEmail(in.Email)
	if !IsValidEmail(email) {
		return RegisteredUser{}, ErrInvalidEmailFormat
	}
	if !IsStrongPassword(in.Password) {
		return RegisteredUser{}, ErrWeakPassword
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return RegisteredUser{}, ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNotFound):
		return RegisteredUser{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return RegisteredUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        optional(in.Phone),
		Gender:       optional(in.Gender),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var founded *domain.Hospital
	if role == domain.RoleStaff {
		name := strings.TrimSpace(in.HospitalName)
		user.HospitalName = &name
		founded, err = s.registerStaff(ctx, &user, name)
	} else {
		err = s.Store.Users().CreateUser(ctx, user)
	}
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return RegisteredUser{}, ErrEmailAlreadyExists
		}
		return RegisteredUser{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.Bool("is_primary", user.IsPrimary),
	)

	if founded != nil {
		if err := s.Notifier.AccessCode(ctx, user.Email, founded.Name, founded.AccessCode); err != nil {
			log.Warn("access code email not delivered",
				slog.String("user_id", user.ID),
				slog.String("hospital_id", founded.ID),
				slog.Any("error", err),
			)
		}
	}

	return RegisteredUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
	}, nil
}

// registerStaff links u to the named hospital, creating it when absent.
// It returns the hospital only when this call created it.
func (s *RegistrationService) registerStaff(ctx context.Context, u *domain.User, name string) (*domain.Hospital, error) {
	h, err := s.Store.Hospitals().GetHospitalByName(ctx, name)
	switch {
	case err == nil:
		return nil, s.joinHospital(ctx, u, h)
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("lookup hospital: %w", err)
	}

	founded, err := s.foundHospital(ctx, u, name)
	if !errors.Is(err, errHospitalRace) {
		return founded, err
	}

	// Lost the race: join the winner's hospital. One re-read only.
	slogx.FromContext(ctx).Info("hospital created concurrently, joining as member",
		slog.String("user_id", u.ID))

	h, err = s.Store.Hospitals().GetHospitalByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("re-read hospital after conflict: %w", err)
	}
	return nil, s.joinHospital(ctx, u, h)
}

func (s *RegistrationService) joinHospital(ctx context.Context, u *domain.User, h domain.Hospital) error {
	u.HospitalID = &h.ID
	u.IsPrimary = false
	u.IsVerified = false
	return s.Store.Users().CreateUser(ctx, *u)
}

// foundHospital creates the hospital and its primary member atomically.
func (s *RegistrationService) foundHospital(ctx context.Context, u *domain.User, name string) (*domain.Hospital, error) {
	code, err := cryptox.GenerateAccessCode()
	if err != nil {
		return nil, fmt.Errorf("generate access code: %w", err)
	}

	h := domain.Hospital{
		ID:         idx.New().String(),
		Name:       name,
		AccessCode: code,
		CreatedAt:  u.CreatedAt,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Hospitals().CreateHospital(ctx, h); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return errHospitalRace
			}
			return fmt.Errorf("create hospital: %w", err)
		}

		u.HospitalID = &h.ID
		u.IsPrimary = true
		u.IsVerified = true
		return tx.Users().CreateUser(ctx, *u)
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func missingRegistrationFields(in RegisterInput, role domain.Role) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
		{"password", in.Password},
	} {
		if blank(f.value) {
			missing = append(missing, f.name)
		}
	}
	if role == domain.RoleStaff && blank(in.HospitalName) {
		missing = append(missing, "hospitalName")
	}
	return missing
}
