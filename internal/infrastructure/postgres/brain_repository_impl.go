package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
)

type BrainRepository struct {
	pool *pgxpool.Pool
}

func NewBrainRepository(pool *pgxpool.Pool) *BrainRepository {
	return &BrainRepository{pool: pool}
}

func (r *BrainRepository) Create(ctx context.Context, b *entity.Brain) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO brains (owner_id, name, description, is_default)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id, created_at
	`, b.OwnerID, b.Name, b.Description, b.IsDefault)

	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateName
		}
		return err
	}
	return nil
}

// Nav aggregates distinct content types per brain in one pass.
func (r *BrainRepository) Nav(ctx context.Context, ownerID string) ([]entity.BrainNav, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.name, b.is_default,
		       COALESCE(string_agg(DISTINCT i.content_type, ','), '')
		FROM brains b
		LEFT JOIN items i ON i.brain_id = b.id
		WHERE b.owner_id = $1
		GROUP BY b.id
		ORDER BY b.created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nav []entity.BrainNav
	for rows.Next() {
		var n entity.BrainNav
		var types string
		if err := rows.Scan(&n.ID, &n.Name, &n.IsDefault, &types); err != nil {
			return nil, err
		}
		set := map[string]bool{}
		for _, t := range strings.Split(types, ",") {
			set[strings.TrimSpace(t)] = true
		}
		n.HasTweet = set[entity.ContentTypeTweet]
		n.HasYouTube = set[entity.ContentTypeYouTube]
		n.HasNote = set[entity.ContentTypeNote]
		n.HasLink = set[entity.ContentTypeLink]
		n.HasOther = set[entity.ContentTypeOther]
		nav = append(nav, n)
	}
	return nav, rows.Err()
}

// Detail counts items by content type in a single FILTER query.
func (r *BrainRepository) Detail(ctx context.Context, ownerID, brainID string) (*entity.BrainDetail, error) {
	d := &entity.BrainDetail{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, '')
		FROM brains
		WHERE id = $1 AND owner_id = $2
	`, brainID, ownerID)
	if err := row.Scan(&d.ID, &d.Name, &d.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	row = r.pool.QueryRow(ctx, `
		SELECT count(*)::int,
		       count(*) FILTER (WHERE content_type = $2)::int,
		       count(*) FILTER (WHERE content_type = $3)::int,
		       count(*) FILTER (WHERE content_type = $4)::int,
		       count(*) FILTER (WHERE content_type = $5)::int,
		       count(*) FILTER (WHERE content_type = $6)::int,
		       count(*) FILTER (WHERE content_type = $7)::int
		FROM items
		WHERE brain_id = $1
	`, brainID,
		entity.ContentTypeTweet, entity.ContentTypeVideo, entity.ContentTypeNote,
		entity.ContentTypeLink, entity.ContentTypeOther, entity.ContentTypeYouTube)
	c := &d.Counts
	if err := row.Scan(&c.Total, &c.Tweets, &c.Videos, &c.Notes, &c.Links, &c.Other, &c.YouTube); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *BrainRepository) Owns(ctx context.Context, ownerID, brainID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM brains WHERE id = $1 AND owner_id = $2)
	`, brainID, ownerID).Scan(&ok)
	return ok, err
}

var _ repository.BrainRepository = (*BrainRepository)(nil)
