package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	row, err := r.q.GetOldestUserByPhone(ctx, sql.NullString{String: phone, Valid: true})
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        mapOptionalString(u.Phone),
		Gender:       mapOptionalString(u.Gender),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		HospitalName: mapOptionalString(u.HospitalName),
		HospitalID:   mapOptionalString(u.HospitalID),
		IsPrimary:    u.IsPrimary,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return mapAffected(r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: newHash,
		UpdatedAt:    time.Now().UTC(),
		ID:           userID,
	}))
}

func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	return mapAffected(r.q.MarkUserVerified(ctx, gen.MarkUserVerifiedParams{
		UpdatedAt: time.Now().UTC(),
		ID:        userID,
	}))
}
