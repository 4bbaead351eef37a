package sqlite

import (
	"context"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
	"github.com/qurehealth/qure/internal/auth/store/drivers/sqlite/gen"
)

type resetTokensRepo struct {
	q *gen.Queries
}

func (r *resetTokensRepo) CreatePasswordResetToken(ctx context.Context, t domain.PasswordResetToken) error {
	err := r.q.CreatePasswordResetToken(ctx, gen.CreatePasswordResetTokenParams{
		ID:        t.ID,
		TokenHash: t.TokenHash,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt.UTC(),
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.CreatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *resetTokensRepo) GetPasswordResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error) {
	row, err := r.q.GetPasswordResetTokenByHash(ctx, hash)
	if err != nil {
		return domain.PasswordResetToken{}, mapNotFound(err)
	}
	return mapResetToken(row), nil
}

func (r *resetTokensRepo) InvalidateActivePasswordResetTokens(ctx context.Context, userID string, now time.Time) error {
	now = now.UTC()
	return r.q.InvalidateActivePasswordResetTokens(ctx, gen.InvalidateActivePasswordResetTokensParams{
		UpdatedAt: now,
		UserID:    userID,
		ExpiresAt: now,
	})
}

func (r *resetTokensRepo) ConsumePasswordResetToken(ctx context.Context, id string, now time.Time) error {
	return mapAffected(r.q.ConsumePasswordResetToken(ctx, gen.ConsumePasswordResetTokenParams{
		UpdatedAt: now.UTC(),
		ID:        id,
	}))
}

func (r *resetTokensRepo) DeleteStalePasswordResetTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoff = cutoff.UTC()
	return r.q.DeleteStalePasswordResetTokens(ctx, gen.DeleteStalePasswordResetTokensParams{
		ExpiresAt: cutoff,
		UpdatedAt: cutoff,
	})
}
