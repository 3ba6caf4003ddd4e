package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/services"
	"github.com/marberan/tastemix/internal/validation"
	"github.com/marberan/tastemix/pkg/models"
)

type CatalogHandler struct {
	recommender *services.RecommenderService
	validator   *validation.SchemaValidator
	logger      *logrus.Logger
}

func NewCatalogHandler(recommender *services.RecommenderService, validator *validation.SchemaValidator, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		recommender: recommender,
		validator:   validator,
		logger:      logger,
	}
}

// Post answers POST /api/v1/catalog/:domain with a JSON array of items.
// Ingestion replaces the domain catalog and rebuilds its vector space, so
// the batch is validated in full before the engine sees any of it.
func (h *CatalogHandler) Post(c *gin.Context) {
	domain, ok := models.ParseDomain(c.Param("domain"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_DOMAIN",
				"message": "Domain must be one of movie, music, podcast",
			},
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Could not read request body",
			},
		})
		return
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(body, &rawItems); err != nil || len(rawItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Request body must be a non-empty JSON array of catalog items",
			},
		})
		return
	}

	for i, raw := range rawItems {
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_CATALOG_ITEM",
					"message": "Catalog item is not valid JSON",
					"index":   i,
				},
			})
			return
		}
		if result := h.validateForDomain(domain, generic); !result.Valid {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "SCHEMA_VALIDATION_FAILED",
					"message": "Catalog item failed schema validation",
					"index":   i,
					"details": result.Errors,
				},
			})
			return
		}
	}

	count, err := h.ingest(domain, body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "CATALOG_REJECTED",
				"message": err.Error(),
			},
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"domain": domain,
		"items":  count,
	}).Info("Catalog replaced")

	c.JSON(http.StatusOK, gin.H{
		"domain":   domain,
		"ingested": count,
	})
}

func (h *CatalogHandler) validateForDomain(domain models.Domain, item interface{}) *validation.ValidationResult {
	switch domain {
	case models.DomainMovie:
		return h.validator.ValidateMovie(item)
	case models.DomainMusic:
		return h.validator.ValidateSong(item)
	default:
		return h.validator.ValidatePodcast(item)
	}
}

func (h *CatalogHandler) ingest(domain models.Domain, body []byte) (int, error) {
	switch domain {
	case models.DomainMovie:
		var movies []models.Movie
		if err := json.Unmarshal(body, &movies); err != nil {
			return 0, err
		}
		return len(movies), h.recommender.IngestMovies(movies)
	case models.DomainMusic:
		var songs []models.Song
		if err := json.Unmarshal(body, &songs); err != nil {
			return 0, err
		}
		return len(songs), h.recommender.IngestSongs(songs)
	default:
		var podcasts []models.Podcast
		if err := json.Unmarshal(body, &podcasts); err != nil {
			return 0, err
		}
		return len(podcasts), h.recommender.IngestPodcasts(podcasts)
	}
}
