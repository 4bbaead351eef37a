package domain

import "strings"

// Role is the account type. There are exactly two.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleStaff   Role = "STAFF"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleStaff
}

func (r Role) String() string { return string(r) }

// ParseRole maps user input to a Role. An empty string yields RolePatient;
// anything else must match a known role exactly (after trimming).
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RolePatient, true
	}
	r := Role(s)
	return r, r.Valid()
}
