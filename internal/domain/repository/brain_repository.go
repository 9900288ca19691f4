package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
)

// ErrDuplicateName is returned when a brain name is already taken for the owner.
var ErrDuplicateName = errors.New("duplicate name")

// BrainRepository defines brain collection operations.
type BrainRepository interface {
	// Create inserts a brain and fills in the generated ID.
	Create(ctx context.Context, b *entity.Brain) error
	// Nav lists the owner's brains with content-type presence flags.
	Nav(ctx context.Context, ownerID string) ([]entity.BrainNav, error)
	// Detail returns brain metadata plus item counts; ErrNotFound when the
	// brain does not exist or is not owned by ownerID.
	Detail(ctx context.Context, ownerID, brainID string) (*entity.BrainDetail, error)
	// Owns reports whether brainID belongs to ownerID.
	Owns(ctx context.Context, ownerID, brainID string) (bool, error)
}
