//go:build e2e

package auth_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/qurehealth/qure/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestStaffHospitalLifecycle covers hospital founding, the emailed access
// code and verification of a second staff member.
func TestStaffHospitalLifecycle(t *testing.T) {
	c := setupAuthContainer(t, nil)
	client := authsdk.NewSDKClient(c.BaseURL)

	registerStaff(t, client, "chief@example.com", "Royal Prince Alfred")
	code := c.lastMatch(t, accessCodePattern)

	founder, err := client.Login(t.Context(), "chief@example.com", testPassword, "STAFF")
	require.NoError(t, err)
	require.True(t, founder.User().IsPrimary)
	require.True(t, founder.User().IsVerified)

	_, err = founder.StaffDashboard(t.Context())
	require.NoError(t, err)

	err = founder.VerifyAccess(t.Context(), code)
	requireStatus(t, err, http.StatusBadRequest, "founder is already verified")

	registerStaff(t, client, "nurse@example.com", "Royal Prince Alfred")
	nurse, err := client.Login(t.Context(), "nurse@example.com", testPassword, "STAFF")
	require.NoError(t, err)
	require.False(t, nurse.User().IsPrimary)
	require.False(t, nurse.User().IsVerified)

	_, err = nurse.StaffDashboard(t.Context())
	apiErr := requireStatus(t, err, http.StatusForbidden)
	require.Equal(t, "Hospital access code required", apiErr.Message)

	err = nurse.VerifyAccess(t.Context(), "00000000")
	requireStatus(t, err, http.StatusBadRequest, "wrong code")

	require.NoError(t, nurse.VerifyAccess(t.Context(), "  "+strings.ToLower(code)))

	user, err := nurse.StaffDashboard(t.Context())
	require.NoError(t, err)
	require.True(t, user.IsVerified)

	founderMe, err := founder.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, *founderMe.HospitalID, *user.HospitalID)
}

// TestConcurrentHospitalFounding races several registrations naming the
// same new hospital. Exactly one becomes primary.
func TestConcurrentHospitalFounding(t *testing.T) {
	c := setupAuthContainer(t, nil)
	client := authsdk.NewSDKClient(c.BaseURL)

	const n = 5
	errs := make(chan error, n)
	for i := range n {
		go func() {
			_, err := client.Register(t.Context(), authsdk.RegisterRequest{
				FirstName:    "Racer",
				LastName:     "Staff",
				Email:        "racer" + string(rune('a'+i)) + "@example.com",
				Password:     testPassword,
				Role:         "STAFF",
				HospitalName: "Concord",
			})
			errs <- err
		}()
	}
	for range n {
		require.NoError(t, <-errs)
	}

	var primaries int
	var hospitalID string
	for i := range n {
		s, err := client.Login(t.Context(), "racer"+string(rune('a'+i))+"@example.com", testPassword, "")
		require.NoError(t, err)
		me, err := s.Me(t.Context())
		require.NoError(t, err)

		if me.IsPrimary {
			primaries++
		}
		if hospitalID == "" {
			hospitalID = *me.HospitalID
		}
		require.Equal(t, hospitalID, *me.HospitalID)
	}
	require.Equal(t, 1, primaries)
}
