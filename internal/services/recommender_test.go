package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberan/tastemix/internal/config"
	"github.com/marberan/tastemix/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080", Mode: "test"},
		Auth: config.AuthConfig{
			Enabled:   false,
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			APIKeys:   map[string]string{"premium": "demo-premium-key"},
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
		Engine: config.EngineConfig{
			ContentWeight:       0.7,
			CollaborativeWeight: 0.3,
			MFThreshold:         10,
			MFFactors:           20,
			MFEpochs:            50,
			Seed:                42,
		},
		Cache: config.CacheConfig{Enabled: false},
	}
}

func newSeededService(t *testing.T) *RecommenderService {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewRecommenderService(testConfig(), logger, nil)
	svc.LoadSeedData()
	return svc
}

func TestRecommend_AllDomains(t *testing.T) {
	svc := newSeededService(t)

	for _, domain := range []string{"movie", "music", "podcast"} {
		t.Run(domain, func(t *testing.T) {
			resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{
				UserID: "user1",
				Domain: domain,
				Count:  5,
			})
			require.NoError(t, err)
			assert.Equal(t, "user1", resp.UserID)
			assert.False(t, resp.CacheHit)
			assert.NotEmpty(t, resp.Recommendations)
			assert.LessOrEqual(t, len(resp.Recommendations), 5)

			for i, rec := range resp.Recommendations {
				assert.Equal(t, i+1, rec.Position)
				assert.GreaterOrEqual(t, rec.HybridScore, 0.0)
				assert.LessOrEqual(t, rec.HybridScore, 1.0)
				assert.NotEmpty(t, rec.Title)
			}
		})
	}
}

func TestRecommend_UnknownDomain(t *testing.T) {
	svc := newSeededService(t)

	_, err := svc.Recommend(context.Background(), models.RecommendationRequest{
		UserID: "user1",
		Domain: "books",
	})
	assert.Error(t, err)
}

func TestRecommend_MissingUserID(t *testing.T) {
	svc := newSeededService(t)

	_, err := svc.Recommend(context.Background(), models.RecommendationRequest{
		Domain: "movie",
	})
	assert.Error(t, err)
}

func TestRecommend_SeenItemsExcluded(t *testing.T) {
	svc := newSeededService(t)

	seen := []string{"tt0111161", "tt0068646"}
	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{
		UserID: "user1",
		Domain: "movie",
		Seen:   seen,
		Count:  10,
	})
	require.NoError(t, err)

	for _, rec := range resp.Recommendations {
		assert.NotContains(t, seen, rec.ItemID)
	}
}

func TestRecommend_MoodPath(t *testing.T) {
	svc := newSeededService(t)

	resp, err := svc.Recommend(context.Background(), models.RecommendationRequest{
		UserID: "newcomer",
		Domain: "podcast",
		Mood:   models.MoodProfile{Primary: "sad", Confidence: 80},
		Count:  5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "sad", resp.Mood)
}

func TestAddFeedback_RoutesToDomainEngine(t *testing.T) {
	svc := newSeededService(t)

	engine, _ := svc.Engine(models.DomainMovie)
	before := engine.Collaborative().RatingCount()

	err := svc.AddFeedback([]models.FeedbackEvent{
		{UserID: "user4", ItemID: "tt0109830", Domain: "movie", FeedbackType: "like"},
		{UserID: "user4", ItemID: "tt0816692", Domain: "movie", FeedbackType: "rating", Rating: 3.5},
	})
	require.NoError(t, err)
	assert.Equal(t, before+2, engine.Collaborative().RatingCount())
}

func TestAddFeedback_InvalidDomainRejectsBatch(t *testing.T) {
	svc := newSeededService(t)

	engine, _ := svc.Engine(models.DomainMovie)
	before := engine.Collaborative().RatingCount()

	err := svc.AddFeedback([]models.FeedbackEvent{
		{UserID: "user4", ItemID: "tt0109830", Domain: "movie", FeedbackType: "like"},
		{UserID: "user4", ItemID: "x", Domain: "books", FeedbackType: "like"},
	})
	assert.Error(t, err)
	assert.Equal(t, before, engine.Collaborative().RatingCount())
}

func TestSimilarItems(t *testing.T) {
	svc := newSeededService(t)

	items, err := svc.SimilarItems(models.DomainMovie, "tt1375666", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 3)
	for _, item := range items {
		assert.NotEqual(t, "tt1375666", item.ItemID)
	}
}

func TestIngestMovies_InvalidItemRejected(t *testing.T) {
	svc := newSeededService(t)

	err := svc.IngestMovies([]models.Movie{{ID: "", Title: "Nameless"}})
	assert.Error(t, err)
}

func TestCatalogSizes(t *testing.T) {
	svc := newSeededService(t)

	sizes := svc.CatalogSizes()
	assert.Equal(t, 5, sizes[models.DomainMovie])
	assert.Equal(t, 10, sizes[models.DomainMusic])
	assert.Equal(t, 8, sizes[models.DomainPodcast])
}

func TestRecommendationCacheKey_SeenOrderInsensitive(t *testing.T) {
	a := recommendationCacheKey(models.DomainMovie, "user1", "happy", []string{"b", "a"}, 10)
	b := recommendationCacheKey(models.DomainMovie, "user1", "happy", []string{"a", "b"}, 10)
	assert.Equal(t, a, b)
}

func TestNilCache_IsAlwaysMiss(t *testing.T) {
	var cache *RecommendationCache

	cache.Set(context.Background(), "key", []models.Recommendation{{ItemID: "x"}})
	_, ok := cache.Get(context.Background(), "key")
	assert.False(t, ok)
	assert.NoError(t, cache.Close())
}
