package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string  // lowercase, trimmed, unique
	Phone        *string // not unique
	Gender       *string
	PasswordHash string // argon2id PHC, or legacy bcrypt
	Role         Role
	HospitalName *string // STAFF only
	HospitalID   *string // STAFF only
	IsPrimary    bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the sanitized view of a User attached to authenticated
// requests. It never carries the password hash.
type Principal struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Role         Role    `json:"role"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        *string `json:"phone"`
	Gender       *string `json:"gender,omitempty"`
	HospitalName *string `json:"hospitalName"`
	HospitalID   *string `json:"hospitalId"`
	IsPrimary    bool    `json:"isPrimary"`
	IsVerified   bool    `json:"isVerified"`
}

func (u User) Principal() Principal {
	return Principal{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Gender:       u.Gender,
		HospitalName: u.HospitalName,
		HospitalID:   u.HospitalID,
		IsPrimary:    u.IsPrimary,
		IsVerified:   u.IsVerified,
	}
}
