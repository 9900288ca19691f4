package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/pkg/helpers"
	"github.com/oksasatya/second-brain-api/pkg/prefill"
)

const prefillCacheTTL = time.Hour

// PrefillService resolves URL metadata with a Redis cache in front of the
// outbound lookups.
type PrefillService struct {
	Client *prefill.Client
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewPrefillService(client *prefill.Client, rdb *redis.Client, logger *logrus.Logger) *PrefillService {
	return &PrefillService{Client: client, Redis: rdb, Logger: logger}
}

func prefillKey(url string) string {
	return "prefill:url:" + url
}

// Lookup never fails: cache errors and lookup misses both degrade to an empty
// result.
func (s *PrefillService) Lookup(ctx context.Context, url string) prefill.Meta {
	if s.Redis != nil {
		var cached prefill.Meta
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, prefillKey(url), &cached); err == nil && ok {
			return cached
		}
	}

	meta := s.Client.Lookup(ctx, url)

	if s.Redis != nil && (meta.Title != "" || meta.Description != "") {
		if err := helpers.RedisSetJSON(ctx, s.Redis, prefillKey(url), meta, prefillCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("prefill cache write failed")
		}
	}
	return meta
}
