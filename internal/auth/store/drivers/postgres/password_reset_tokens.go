package postgres

import (
	"context"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
)

type resetTokensRepo struct {
	q dbtx
}

func (r *resetTokensRepo) CreatePasswordResetToken(ctx context.Context, t domain.PasswordResetToken) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (id, token_hash, user_id, expires_at, used, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, FALSE, $5, $5)`,
		t.ID, t.TokenHash, t.UserID, t.ExpiresAt.UTC(), t.CreatedAt.UTC())
	return mapConstraint(err)
}

func (r *resetTokensRepo) GetPasswordResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.q.QueryRowContext(ctx,
		`SELECT id, token_hash, user_id, expires_at, used, created_at, updated_at
		 FROM password_reset_tokens WHERE token_hash = $1`, hash,
	).Scan(&t.ID, &t.TokenHash, &t.UserID, &t.ExpiresAt, &t.Used, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.PasswordResetToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *resetTokensRepo) InvalidateActivePasswordResetTokens(ctx context.Context, userID string, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = TRUE, updated_at = $1
		 WHERE user_id = $2 AND used = FALSE AND expires_at > $1`,
		now.UTC(), userID)
	return err
}

func (r *resetTokensRepo) ConsumePasswordResetToken(ctx context.Context, id string, now time.Time) error {
	return mapAffected(r.q.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = TRUE, updated_at = $1 WHERE id = $2 AND used = FALSE`,
		now.UTC(), id))
}

func (r *resetTokensRepo) DeleteStalePasswordResetTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE expires_at < $1 OR (used = TRUE AND updated_at < $1)`,
		cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
