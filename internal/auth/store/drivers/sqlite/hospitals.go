package sqlite

import (
	"context"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/store/drivers/sqlite/gen"
)

type hospitalsRepo struct {
	q *gen.Queries
}

func (r *hospitalsRepo) GetHospitalByID(ctx context.Context, id string) (domain.Hospital, error) {
	row, err := r.q.GetHospitalByID(ctx, id)
	if err != nil {
		return domain.Hospital{}, mapNotFound(err)
	}
	return mapHospital(row), nil
}

func (r *hospitalsRepo) GetHospitalByName(ctx context.Context, name string) (domain.Hospital, error) {
	row, err := r.q.GetHospitalByName(ctx, name)
	if err != nil {
		return domain.Hospital{}, mapNotFound(err)
	}
	return mapHospital(row), nil
}

func (r *hospitalsRepo) CreateHospital(ctx context.Context, h domain.Hospital) error {
	err := r.q.CreateHospital(ctx, gen.CreateHospitalParams{
		ID:         h.ID,
		Name:       h.Name,
		AccessCode: h.AccessCode,
		CreatedAt:  h.CreatedAt.UTC(),
	})
	return mapConstraint(err)
}
