package services

import (
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/config"
)

type Services struct {
	Auth        *AuthService
	Health      *HealthService
	Recommender *RecommenderService
	Cache       *RecommendationCache
}

func New(cfg *config.Config, logger *logrus.Logger) (*Services, error) {
	cache, err := NewRecommendationCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	recommender := NewRecommenderService(cfg, logger, cache)
	recommender.LoadSeedData()

	return &Services{
		Auth:        NewAuthService(cfg, logger),
		Health:      NewHealthService(cfg, logger, recommender),
		Recommender: recommender,
		Cache:       cache,
	}, nil
}

func (s *Services) Close() error {
	return s.Cache.Close()
}
