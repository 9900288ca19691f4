package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
)

type fakeItemRepo struct {
	items []entity.Item
	tags  map[string][]string // brainID -> tag names
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{tags: map[string][]string{}}
}

func (r *fakeItemRepo) CreateWithTags(_ context.Context, item *entity.Item, tags []string) error {
	item.ID = "item-1"
	r.items = append(r.items, *item)
	r.tags[item.BrainID] = append(r.tags[item.BrainID], tags...)
	return nil
}

func (r *fakeItemRepo) ListTags(_ context.Context, _ string) ([]entity.Tag, error) {
	var out []entity.Tag
	for brainID, names := range r.tags {
		for _, n := range names {
			out = append(out, entity.Tag{BrainID: brainID, Name: n, Color: "#FF6B6B"})
		}
	}
	return out, nil
}

func TestCreateTweet_OwnershipRequired(t *testing.T) {
	brains := newFakeBrainRepo()
	items := newFakeItemRepo()
	ctx := context.Background()

	require.NoError(t, brains.Create(ctx, &entity.Brain{OwnerID: "owner-1", Name: "Main"}))
	var brainID string
	for id := range brains.brains {
		brainID = id
	}

	svc := NewItemService(items, brains, nil, nil, nil, "")

	_, err := svc.CreateTweet(ctx, "owner-2", CreateTweetInput{BrainID: brainID, Title: "t", Content: "c"})
	assertCode(t, err, "BE-10", 404)

	id, err := svc.CreateTweet(ctx, "owner-1", CreateTweetInput{
		BrainID: brainID,
		Title:   "A tweet",
		Content: "tweet text",
		URL:     "https://twitter.com/a/status/1",
		Tags:    []string{"go", "notes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "item-1", id)

	require.Len(t, items.items, 1)
	saved := items.items[0]
	assert.Equal(t, entity.ContentTypeTweet, saved.ContentType)
	assert.Equal(t, "owner-1", saved.CreatedBy)
	assert.ElementsMatch(t, []string{"go", "notes"}, items.tags[brainID])
}

func TestListTags(t *testing.T) {
	items := newFakeItemRepo()
	items.tags["b-1"] = []string{"go", "distsys"}
	svc := NewItemService(items, newFakeBrainRepo(), nil, nil, nil, "")

	tags, err := svc.ListTags(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestListTags_EmptyIsNotNil(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeBrainRepo(), nil, nil, nil, "")

	tags, err := svc.ListTags(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestSearch_NoESConfigured(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeBrainRepo(), nil, nil, nil, "")

	hits, err := svc.Search(context.Background(), "owner-1", "query", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
