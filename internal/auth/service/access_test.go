package service

import (
	"context"
	"strings"
	"testing"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestVerifyAccessCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	primary := f.registerStaff(t, "chief@example.com", "Prince Alfred")
	member := f.registerStaff(t, "nurse@example.com", "Prince Alfred")
	patient := f.registerPatient(t, "pat@example.com")
	code := f.hospital(t, "Prince Alfred").AccessCode

	principal := func(id string) domain.Principal { return f.user(t, id).Principal() }

	t.Run("missing code is checked first", func(t *testing.T) {
		require.ErrorIs(t, f.access.VerifyAccessCode(ctx, principal(patient.ID), " "), ErrMissingAccessCode)
	})

	t.Run("patients are forbidden", func(t *testing.T) {
		require.ErrorIs(t, f.access.VerifyAccessCode(ctx, principal(patient.ID), code), ErrForbidden)
	})

	t.Run("primary staff are already verified", func(t *testing.T) {
		require.ErrorIs(t, f.access.VerifyAccessCode(ctx, principal(primary.ID), code), ErrAlreadyVerified)
	})

	t.Run("staff without hospital", func(t *testing.T) {
		p := principal(member.ID)
		p.HospitalID = nil
		require.ErrorIs(t, f.access.VerifyAccessCode(ctx, p, code), ErrNoHospitalLinked)
	})

	t.Run("dangling hospital reference", func(t *testing.T) {
		p := principal(member.ID)
		p.HospitalID = ptr(idx.New().String())
		require.ErrorIs(t, f.access.VerifyAccessCode(ctx, p, code), ErrHospitalNotFound)
	})

	t.Run("wrong code", func(t *testing.T) {
		require.ErrorIs(t, f.access.VerifyAccessCode(ctx, principal(member.ID), "00000000x"), ErrInvalidAccessCode)
		require.False(t, f.user(t, member.ID).IsVerified)
	})

	t.Run("code matches ignoring case and whitespace", func(t *testing.T) {
		require.NoError(t, f.access.VerifyAccessCode(ctx, principal(member.ID), "  "+strings.ToLower(code)+"\n"))
		require.True(t, f.user(t, member.ID).IsVerified)
	})

	t.Run("second verification is rejected", func(t *testing.T) {
		require.ErrorIs(t, f.access.VerifyAccessCode(ctx, principal(member.ID), code), ErrAlreadyVerified)
	})
}
