package postgres

import (
	"context"
	"database/sql"

	"github.com/qurehealth/qure/internal/auth/domain"
)

type hospitalsRepo struct {
	q dbtx
}

func scanHospital(row *sql.Row) (domain.Hospital, error) {
	var h domain.Hospital
	if err := row.Scan(&h.ID, &h.Name, &h.AccessCode, &h.CreatedAt); err != nil {
		return domain.Hospital{}, mapNotFound(err)
	}
	return h, nil
}

func (r *hospitalsRepo) GetHospitalByID(ctx context.Context, id string) (domain.Hospital, error) {
	return scanHospital(r.q.QueryRowContext(ctx,
		`SELECT id, name, access_code, created_at FROM hospitals WHERE id = $1`, id))
}

func (r *hospitalsRepo) GetHospitalByName(ctx context.Context, name string) (domain.Hospital, error) {
	return scanHospital(r.q.QueryRowContext(ctx,
		`SELECT id, name, access_code, created_at FROM hospitals WHERE name = $1`, name))
}

func (r *hospitalsRepo) CreateHospital(ctx context.Context, h domain.Hospital) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO hospitals (id, name, access_code, created_at) VALUES ($1, $2, $3, $4)`,
		h.ID, h.Name, h.AccessCode, h.CreatedAt.UTC())
	return mapConstraint(err)
}
