package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
)

const userColumns = `id, first_name, last_name, email, phone, gender, password_hash, role,
	hospital_name, hospital_id, is_primary, is_verified, created_at, updated_at`

type usersRepo struct {
	q dbtx
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                                   domain.User
		role                                string
		phone, gender, hospitalName, hospID sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone, &gender, &u.PasswordHash, &role,
		&hospitalName, &hospID, &u.IsPrimary, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	u.Phone = stringPtr(phone)
	u.Gender = stringPtr(gender)
	u.HospitalName = stringPtr(hospitalName)
	u.HospitalID = stringPtr(hospID)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = $1 ORDER BY created_at ASC, id ASC LIMIT 1`, phone))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		u.ID, u.FirstName, u.LastName, u.Email, nullString(u.Phone), nullString(u.Gender),
		u.PasswordHash, string(u.Role), nullString(u.HospitalName), nullString(u.HospitalID),
		u.IsPrimary, u.IsVerified, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return mapAffected(r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		newHash, time.Now().UTC(), userID))
}

func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	return mapAffected(r.q.ExecContext(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), userID))
}
