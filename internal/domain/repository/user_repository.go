package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert violates the unique email
	// constraint.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the credential store operations.
type UserRepository interface {
	// Create inserts a locally-registered user (password hash set) inside a
	// transaction and fills in the generated ID and CreatedAt.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// EnrichProfile fills empty name/avatar fields from an external identity.
	// Non-empty stored values are never overwritten.
	EnrichProfile(ctx context.Context, id, name, avatarURL string) error
	// UpsertByEmail inserts an externally-provisioned user (no password) and
	// fills in the ID. When the email already exists it resolves to the
	// existing row instead of failing, closing the find-or-create race.
	UpsertByEmail(ctx context.Context, u *entity.User) error
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
}
