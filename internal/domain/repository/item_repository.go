package repository

import (
	"context"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
)

// ItemRepository defines item and tag operations.
type ItemRepository interface {
	// CreateWithTags inserts the item, upserts the given tag names for the
	// item's brain, and links them, all in one transaction. The item's ID is
	// filled in on success.
	CreateWithTags(ctx context.Context, item *entity.Item, tags []string) error
	// ListTags returns every tag across all brains owned by ownerID.
	ListTags(ctx context.Context, ownerID string) ([]entity.Tag, error)
}
