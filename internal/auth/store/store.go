package store

import (
	"context"
	"errors"
	"time"

	"github.com/qurehealth/qure/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx-scoped store can be handed to code that must not
// open a transaction of its own.
type Store interface {
	Users() Users
	Hospitals() Hospitals
	PasswordResetTokens() PasswordResetTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already-normalized (lowercase, trimmed) email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByPhone returns the oldest account registered with phone.
	GetUserByPhone(ctx context.Context, phone string) (domain.User, error)

	// CreateUser inserts a new user. A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// MarkVerified sets is_verified and bumps updated_at.
	MarkVerified(ctx context.Context, userID string) error
}

type Hospitals interface {
	GetHospitalByID(ctx context.Context, id string) (domain.Hospital, error)

	// GetHospitalByName matches the exact (already trimmed) name.
	GetHospitalByName(ctx context.Context, name string) (domain.Hospital, error)

	// CreateHospital inserts a hospital. A duplicate name yields ErrAlreadyExists.
	CreateHospital(ctx context.Context, h domain.Hospital) error
}

type PasswordResetTokens interface {
	CreatePasswordResetToken(ctx context.Context, t domain.PasswordResetToken) error

	// GetPasswordResetTokenByHash looks a token up by its fingerprint,
	// regardless of used/expired state.
	GetPasswordResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error)

	// InvalidateActivePasswordResetTokens marks every unused, unexpired token
	// of userID as used.
	InvalidateActivePasswordResetTokens(ctx context.Context, userID string, now time.Time) error

	// ConsumePasswordResetToken flips used from false to true. It returns
	// ErrNotFound when no unused token with that id exists, which is how a
	// concurrent second consumer learns it lost.
	ConsumePasswordResetToken(ctx context.Context, id string, now time.Time) error

	// DeleteStalePasswordResetTokens removes tokens that are used or expired
	// and were last touched before cutoff. Returns the number removed.
	DeleteStalePasswordResetTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
