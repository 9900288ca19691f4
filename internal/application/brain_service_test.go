package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
)

type fakeBrainRepo struct {
	brains  map[string]*entity.Brain // by id
	nextID  int
	navErr  error
	failAll error
}

func newFakeBrainRepo() *fakeBrainRepo {
	return &fakeBrainRepo{brains: map[string]*entity.Brain{}}
}

func (r *fakeBrainRepo) Create(_ context.Context, b *entity.Brain) error {
	if r.failAll != nil {
		return r.failAll
	}
	for _, existing := range r.brains {
		if existing.OwnerID == b.OwnerID && existing.Name == b.Name {
			return repository.ErrDuplicateName
		}
	}
	r.nextID++
	b.ID = "b-" + string(rune('a'+r.nextID))
	cp := *b
	r.brains[b.ID] = &cp
	return nil
}

func (r *fakeBrainRepo) Nav(_ context.Context, ownerID string) ([]entity.BrainNav, error) {
	if r.navErr != nil {
		return nil, r.navErr
	}
	var nav []entity.BrainNav
	for _, b := range r.brains {
		if b.OwnerID == ownerID {
			nav = append(nav, entity.BrainNav{ID: b.ID, Name: b.Name, IsDefault: b.IsDefault})
		}
	}
	return nav, nil
}

func (r *fakeBrainRepo) Detail(_ context.Context, ownerID, brainID string) (*entity.BrainDetail, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	b, ok := r.brains[brainID]
	if !ok || b.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &entity.BrainDetail{ID: b.ID, Name: b.Name, Description: b.Description}, nil
}

func (r *fakeBrainRepo) Owns(_ context.Context, ownerID, brainID string) (bool, error) {
	b, ok := r.brains[brainID]
	return ok && b.OwnerID == ownerID, nil
}

func TestBrainCreate_DuplicateName(t *testing.T) {
	svc := NewBrainService(newFakeBrainRepo(), nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, "owner-1", "Reading List", "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = svc.Create(ctx, "owner-1", "Reading List", "")
	assertCode(t, err, "BE-09", 409)

	// Same name is fine for a different owner.
	_, err = svc.Create(ctx, "owner-2", "Reading List", "")
	require.NoError(t, err)
}

func TestBrainNav_EmptyIsNotNil(t *testing.T) {
	svc := NewBrainService(newFakeBrainRepo(), nil)

	nav, err := svc.Nav(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.NotNil(t, nav)
	assert.Empty(t, nav)
}

func TestBrainNav_RepoError(t *testing.T) {
	repo := newFakeBrainRepo()
	repo.navErr = errors.New("db down")
	svc := NewBrainService(repo, nil)

	_, err := svc.Nav(context.Background(), "owner-1")
	assertCode(t, err, "BE-01", 500)
}

func TestBrainDetail_OwnershipEnforced(t *testing.T) {
	repo := newFakeBrainRepo()
	svc := NewBrainService(repo, nil)
	ctx := context.Background()

	id, err := svc.Create(ctx, "owner-1", "Reading List", "papers to read")
	require.NoError(t, err)

	d, err := svc.Detail(ctx, "owner-1", id)
	require.NoError(t, err)
	assert.Equal(t, "Reading List", d.Name)

	// Someone else's brain looks like it does not exist.
	_, err = svc.Detail(ctx, "owner-2", id)
	assertCode(t, err, "BE-10", 404)

	_, err = svc.Detail(ctx, "owner-1", "missing")
	assertCode(t, err, "BE-10", 404)
}
