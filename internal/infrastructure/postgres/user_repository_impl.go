package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password, avatar_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, created_at
	`, u.Name, u.Email, u.Password, u.AvatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, COALESCE(password, ''), name, COALESCE(avatar_url, ''), created_at
		FROM users
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AvatarURL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// EnrichProfile only fills fields that are currently empty; a single UPDATE
// keeps the check and the write atomic.
func (r *UserRepository) EnrichProfile(ctx context.Context, id, name, avatarURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = CASE WHEN COALESCE(name, '') = '' AND $2 <> '' THEN $2 ELSE name END,
		    avatar_url = CASE WHEN COALESCE(avatar_url, '') = '' AND $3 <> '' THEN $3 ELSE avatar_url END
		WHERE id = $1
	`, id, name, avatarURL)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpsertByEmail inserts on a new email and silently resolves to the existing
// row otherwise, so two concurrent exchanges for the same fresh identity
// cannot double-insert.
func (r *UserRepository) UpsertByEmail(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (name, email, avatar_url)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at
	`, u.Name, u.Email, u.AvatarURL)

	err = row.Scan(&u.ID, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the race or the user already existed; reselect.
		err = tx.QueryRow(ctx, `
			SELECT id, created_at FROM users WHERE email = $1
		`, u.Email).Scan(&u.ID, &u.CreatedAt)
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET avatar_url = $2 WHERE id = $1
	`, id, avatarURL)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
