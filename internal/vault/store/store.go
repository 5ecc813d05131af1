package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
)

var (
	ErrNotFound         = errors.New("store: not found")
	ErrAlreadyExists    = errors.New("store: already exists")
	ErrInvalidReference = errors.New("store: invalid reference")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this and expose sub-repositories so a Tx-scoped Store hands out
// repositories bound to the same transaction.
type Store interface {
	Users() Users
	Credentials() Credentials

	// ApplyMigrations brings the schema up to date. Safe to call repeatedly.
	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

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
	// GetUserByUsername matches the username exactly (case-sensitive).
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the stored hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	CountUsers(ctx context.Context) (int64, error)
}

// CredentialFilter narrows ListCredentials. Zero values match everything.
type CredentialFilter struct {
	OwnerID     string // exact owner match
	Application string // case-insensitive substring of the application name
}

type Credentials interface {
	// CreateCredential inserts a credential. Returns ErrInvalidReference
	// when the owner does not exist.
	CreateCredential(ctx context.Context, c domain.Credential) error

	GetCredentialByID(ctx context.Context, id string) (domain.Credential, error)

	// ListCredentials returns matching credentials ordered by modified_at
	// descending, then id ascending.
	ListCredentials(ctx context.Context, f CredentialFilter) ([]domain.Credential, error)

	// UpdateCredential rewrites the mutable fields and modified_at.
	UpdateCredential(ctx context.Context, c domain.Credential) error

	DeleteCredential(ctx context.Context, id string) error

	// CountCredentials counts the credentials owned by ownerID, or every
	// credential when ownerID is empty.
	CountCredentials(ctx context.Context, ownerID string) (int64, error)
}
