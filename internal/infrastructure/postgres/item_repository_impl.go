package postgres

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
)

var tagColors = []string{
	"red", "blue", "green", "yellow", "orange",
	"purple", "pink", "brown", "gray", "black", "white",
}

func randomColor() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tagColors))))
	if err != nil {
		return tagColors[0]
	}
	return tagColors[n.Int64()]
}

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// CreateWithTags writes the item, its tags, and the links atomically; any
// failure rolls the whole thing back.
func (r *ItemRepository) CreateWithTags(ctx context.Context, item *entity.Item, tags []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO items (brain_id, title, content, content_type, url, is_pinned, metadata, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING id, created_at
	`, item.BrainID, item.Title, item.Content, item.ContentType, item.URL,
		item.IsPinned, item.Metadata, item.CreatedBy)
	if err := row.Scan(&item.ID, &item.CreatedAt); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, name := range tags {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tagID string
		err := tx.QueryRow(ctx, `
			INSERT INTO tags (brain_id, name, color)
			VALUES ($1, $2, $3)
			ON CONFLICT (brain_id, name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, item.BrainID, name, randomColor()).Scan(&tagID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO item_tags (item_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, item.ID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ItemRepository) ListTags(ctx context.Context, ownerID string) ([]entity.Tag, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.brain_id, t.name, t.color
		FROM tags t
		WHERE t.brain_id IN (SELECT id FROM brains WHERE owner_id = $1)
		ORDER BY t.name
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.BrainID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

var _ repository.ItemRepository = (*ItemRepository)(nil)
