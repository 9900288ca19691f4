package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/internal/domain/repository"
	"github.com/oksasatya/second-brain-api/pkg/apperr"
	"github.com/oksasatya/second-brain-api/pkg/prefill"
)

// ItemService creates items inside brains and serves item search.
type ItemService struct {
	Items        repository.ItemRepository
	Brains       repository.BrainRepository
	Prefill      *prefill.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESItemsIndex string
}

func NewItemService(items repository.ItemRepository, brains repository.BrainRepository, pf *prefill.Client, logger *logrus.Logger, es *elasticsearch.Client, esItemsIndex string) *ItemService {
	return &ItemService{Items: items, Brains: brains, Prefill: pf, Logger: logger, ES: es, ESItemsIndex: esItemsIndex}
}

type CreateTweetInput struct {
	BrainID string
	Title   string
	Content string
	URL     string
	Pinned  bool
	Tags    []string
}

// CreateTweet saves a tweet item with its tags. oEmbed metadata for the tweet
// URL is fetched best-effort and stored verbatim.
func (s *ItemService) CreateTweet(ctx context.Context, userID string, in CreateTweetInput) (string, error) {
	owns, err := s.Brains.Owns(ctx, userID, in.BrainID)
	if err != nil {
		return "", apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	if !owns {
		return "", apperr.NotFound("BE-10", "Brain not found")
	}

	var metadata json.RawMessage
	if s.Prefill != nil && in.URL != "" {
		metadata = s.Prefill.TweetMetadata(ctx, in.URL)
	}

	item := &entity.Item{
		BrainID:     in.BrainID,
		Title:       in.Title,
		Content:     in.Content,
		ContentType: entity.ContentTypeTweet,
		URL:         in.URL,
		IsPinned:    in.Pinned,
		Metadata:    metadata,
		CreatedBy:   userID,
	}
	if err := s.Items.CreateWithTags(ctx, item, in.Tags); err != nil {
		return "", apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}

	s.indexItem(ctx, item)
	return item.ID, nil
}

// ListTags returns the tag dictionary across all brains owned by the user.
func (s *ItemService) ListTags(ctx context.Context, ownerID string) ([]entity.Tag, error) {
	tags, err := s.Items.ListTags(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	if tags == nil {
		tags = []entity.Tag{}
	}
	return tags, nil
}

// indexItem pushes the item into Elasticsearch; search is best-effort and must
// not fail item creation.
func (s *ItemService) indexItem(ctx context.Context, item *entity.Item) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           item.ID,
		"brain_id":     item.BrainID,
		"title":        item.Title,
		"content":      item.Content,
		"content_type": item.ContentType,
		"url":          item.URL,
		"created_by":   item.CreatedBy,
		"created_at":   item.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESItemsIndex, DocumentID: item.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("item_id", item.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("item_id", item.ID).Warn("es index response error")
	}
}

// Search multi-matches title and content across the caller's items.
func (s *ItemService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESItemsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "content"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"created_by": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESItemsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, apperr.Internal("BE-01", "Something went wrong").WithCause(errors.New(res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Internal("BE-01", "Something went wrong").WithCause(err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
