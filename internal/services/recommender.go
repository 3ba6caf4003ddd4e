package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/config"
	"github.com/marberan/tastemix/internal/dataset"
	"github.com/marberan/tastemix/internal/recommend"
	"github.com/marberan/tastemix/pkg/models"
)

// RecommenderService owns the three long-lived hybrid recommenders (one
// per content domain), constructed once at process start and shared by all
// request paths. Rating ingestion runs as an exclusive writer phase inside
// each engine; queries are read-only.
type RecommenderService struct {
	cfg    *config.Config
	logger *logrus.Logger

	engines  map[models.Domain]*recommend.HybridRecommender
	cache    *RecommendationCache
	validate *validator.Validate
}

func NewRecommenderService(cfg *config.Config, logger *logrus.Logger, cache *RecommendationCache) *RecommenderService {
	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engines := make(map[models.Domain]*recommend.HybridRecommender, 3)
	domains := []models.Domain{models.DomainMovie, models.DomainMusic, models.DomainPodcast}
	for i, domain := range domains {
		// One random source per domain so training in one catalog cannot
		// perturb reproducibility in another.
		rng := rand.New(rand.NewSource(seed + int64(i)))
		mf := recommend.NewMatrixFactorization(cfg.Engine.MFFactors, rng)
		collab := recommend.NewCollaborativeFilter(recommend.CollaborativeConfig{
			MFThreshold: cfg.Engine.MFThreshold,
			MFEpochs:    cfg.Engine.MFEpochs,
			MFFactors:   cfg.Engine.MFFactors,
		}, mf, logger)
		content := recommend.NewContentFilter(recommend.PolicyFor(domain), logger)
		engines[domain] = recommend.NewHybridRecommender(domain, content, collab, recommend.HybridConfig{
			ContentWeight:       cfg.Engine.ContentWeight,
			CollaborativeWeight: cfg.Engine.CollaborativeWeight,
		}, logger)
	}

	return &RecommenderService{
		cfg:      cfg,
		logger:   logger,
		engines:  engines,
		cache:    cache,
		validate: validator.New(),
	}
}

// LoadSeedData ingests the embedded catalogs and rating history. Corpus
// builds and any factorization training happen here, once, before the
// server starts answering queries.
func (s *RecommenderService) LoadSeedData() {
	start := time.Now()

	movies := dataset.Movies()
	movieItems := make([]recommend.CatalogItem, len(movies))
	for i, m := range movies {
		movieItems[i] = m
	}
	s.engines[models.DomainMovie].LoadCatalog(movieItems)
	s.engines[models.DomainMovie].LoadRatings(dataset.MovieRatings())

	songs := dataset.Songs()
	songItems := make([]recommend.CatalogItem, len(songs))
	for i, sg := range songs {
		songItems[i] = sg
	}
	s.engines[models.DomainMusic].LoadCatalog(songItems)
	s.engines[models.DomainMusic].LoadRatings(dataset.SongRatings())

	podcasts := dataset.Podcasts()
	podcastItems := make([]recommend.CatalogItem, len(podcasts))
	for i, p := range podcasts {
		podcastItems[i] = p
	}
	s.engines[models.DomainPodcast].LoadCatalog(podcastItems)
	s.engines[models.DomainPodcast].LoadRatings(dataset.PodcastRatings())

	s.logger.WithFields(logrus.Fields{
		"movies":   len(movies),
		"songs":    len(songs),
		"podcasts": len(podcasts),
		"elapsed":  time.Since(start),
	}).Info("Seed catalogs loaded")
}

// Engine exposes one domain engine; callers outside tests should prefer
// the service methods.
func (s *RecommenderService) Engine(domain models.Domain) (*recommend.HybridRecommender, bool) {
	engine, ok := s.engines[domain]
	return engine, ok
}

// Recommend answers a recommendation query for one domain, consulting the
// optional cache first.
func (s *RecommenderService) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid recommendation request: %w", err)
	}
	domain, ok := models.ParseDomain(req.Domain)
	if !ok {
		return nil, fmt.Errorf("unknown domain %q", req.Domain)
	}
	engine := s.engines[domain]

	count := req.Count
	if count <= 0 {
		count = 10
	}

	cacheKey := recommendationCacheKey(domain, req.UserID, req.Mood.Primary, req.Seen, count)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		return &models.RecommendationResponse{
			UserID:          req.UserID,
			Domain:          domain,
			Mood:            req.Mood.Primary,
			Recommendations: cached,
			GeneratedAt:     time.Now(),
			CacheHit:        true,
		}, nil
	}

	recs := engine.Recommend(req.UserID, req.Mood, req.Seen, count)
	s.cache.Set(ctx, cacheKey, recs)

	return &models.RecommendationResponse{
		UserID:          req.UserID,
		Domain:          domain,
		Mood:            req.Mood.Primary,
		Recommendations: recs,
		GeneratedAt:     time.Now(),
		CacheHit:        false,
	}, nil
}

// SimilarItems ranks catalog neighbors of one item.
func (s *RecommenderService) SimilarItems(domain models.Domain, itemID string, topN int) ([]models.ScoredItem, error) {
	engine, ok := s.engines[domain]
	if !ok {
		return nil, fmt.Errorf("unknown domain %q", domain)
	}
	if topN <= 0 {
		topN = 10
	}
	return engine.Content().SimilarItems(itemID, topN), nil
}

// AddFeedback converts feedback events to ratings and feeds them to the
// matching domain engines. Events for unknown domains are rejected before
// any engine mutates.
func (s *RecommenderService) AddFeedback(events []models.FeedbackEvent) error {
	byDomain := make(map[models.Domain][]models.Rating)
	now := time.Now()

	for i, event := range events {
		if err := s.validate.Struct(event); err != nil {
			return fmt.Errorf("invalid feedback event %d: %w", i, err)
		}
		domain, ok := models.ParseDomain(event.Domain)
		if !ok {
			return fmt.Errorf("invalid feedback event %d: unknown domain %q", i, event.Domain)
		}
		byDomain[domain] = append(byDomain[domain], event.AsRating(now))
	}

	for domain, ratings := range byDomain {
		s.engines[domain].LoadRatings(ratings)
		s.logger.WithFields(logrus.Fields{
			"domain":  domain,
			"events":  len(ratings),
			"ratings": s.engines[domain].Collaborative().RatingCount(),
		}).Info("Feedback ingested")
	}
	return nil
}

// IngestMovies validates and adds movies to the catalog, rebuilding the
// movie vector space.
func (s *RecommenderService) IngestMovies(movies []models.Movie) error {
	items := make([]recommend.CatalogItem, len(movies))
	for i, m := range movies {
		if err := s.validate.Struct(m); err != nil {
			return fmt.Errorf("invalid movie %q: %w", m.ID, err)
		}
		items[i] = m
	}
	s.engines[models.DomainMovie].LoadCatalog(items)
	return nil
}

func (s *RecommenderService) IngestSongs(songs []models.Song) error {
	items := make([]recommend.CatalogItem, len(songs))
	for i, sg := range songs {
		if err := s.validate.Struct(sg); err != nil {
			return fmt.Errorf("invalid song %q: %w", sg.ID, err)
		}
		items[i] = sg
	}
	s.engines[models.DomainMusic].LoadCatalog(items)
	return nil
}

func (s *RecommenderService) IngestPodcasts(podcasts []models.Podcast) error {
	items := make([]recommend.CatalogItem, len(podcasts))
	for i, p := range podcasts {
		if err := s.validate.Struct(p); err != nil {
			return fmt.Errorf("invalid podcast %q: %w", p.ID, err)
		}
		items[i] = p
	}
	s.engines[models.DomainPodcast].LoadCatalog(items)
	return nil
}

// CatalogSizes reports per-domain catalog sizes for health reporting.
func (s *RecommenderService) CatalogSizes() map[models.Domain]int {
	sizes := make(map[models.Domain]int, len(s.engines))
	for domain, engine := range s.engines {
		sizes[domain] = len(engine.Content().Items())
	}
	return sizes
}

func recommendationCacheKey(domain models.Domain, userID, mood string, seen []string, count int) string {
	sortedSeen := make([]string, len(seen))
	copy(sortedSeen, seen)
	sort.Strings(sortedSeen)
	return fmt.Sprintf("rec:%s:%s:%s:%s:%d", domain, userID, mood, strings.Join(sortedSeen, ","), count)
}
