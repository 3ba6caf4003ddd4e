package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/config"
	"github.com/marberan/tastemix/pkg/models"
)

// RecommendationCache is an optional Redis-backed result cache. A nil
// *RecommendationCache is valid and behaves as a permanent miss, so the
// service code never branches on whether caching is configured.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRecommendationCache(cfg config.CacheConfig, logger *logrus.Logger) (*RecommendationCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Redis unreachable, caching disabled")
		return nil, nil
	}

	return &RecommendationCache{client: client, ttl: cfg.TTL, logger: logger}, nil
}

func (c *RecommendationCache) Get(ctx context.Context, key string) ([]models.Recommendation, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var recs []models.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Dropping corrupt cache entry")
		c.client.Del(ctx, key)
		return nil, false
	}
	return recs, true
}

func (c *RecommendationCache) Set(ctx context.Context, key string, recs []models.Recommendation) {
	if c == nil {
		return
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Cache write failed")
	}
}

func (c *RecommendationCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
