package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/services"
	"github.com/marberan/tastemix/internal/validation"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Feedback       *FeedbackHandler
	Catalog        *CatalogHandler
}

func New(logger *logrus.Logger, services *services.Services) (*Handlers, error) {
	schemaValidator, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Recommendation: NewRecommendationHandler(services.Recommender, logger),
		Feedback:       NewFeedbackHandler(services.Recommender, schemaValidator, logger),
		Catalog:        NewCatalogHandler(services.Recommender, schemaValidator, logger),
	}, nil
}
