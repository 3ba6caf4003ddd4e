package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/services"
	"github.com/marberan/tastemix/pkg/models"
)

type RecommendationHandler struct {
	recommender *services.RecommenderService
	logger      *logrus.Logger
}

func NewRecommendationHandler(recommender *services.RecommenderService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		logger:      logger,
	}
}

// Get answers GET /api/v1/recommendations/:userId. The mood block of the
// request is carried in query parameters since the upstream mood
// classifier runs client-side.
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID := c.Param("userId")
	domain := c.DefaultQuery("domain", "movie")

	count := 10
	if countStr := c.Query("count"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 && parsed <= 100 {
			count = parsed
		}
	}

	var seen []string
	if excludeStr := c.Query("exclude"); excludeStr != "" {
		for _, item := range strings.Split(excludeStr, ",") {
			if item = strings.TrimSpace(item); item != "" {
				seen = append(seen, item)
			}
		}
	}

	mood := models.MoodProfile{
		Primary:    c.Query("mood"),
		Energy:     queryFloat(c, "energy"),
		Intensity:  queryFloat(c, "intensity"),
		Confidence: queryFloat(c, "confidence"),
	}
	if keywords := c.Query("keywords"); keywords != "" {
		mood.Keywords = strings.Split(keywords, ",")
	}

	req := models.RecommendationRequest{
		UserID: userID,
		Domain: domain,
		Mood:   mood,
		Seen:   seen,
		Count:  count,
	}

	result, err := h.recommender.Recommend(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Warn("Recommendation request rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_RECOMMENDATION_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if c.Query("format") == "display" {
		display := make([]models.DisplayRecommendation, len(result.Recommendations))
		for i, rec := range result.Recommendations {
			display[i] = rec.Display()
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":         result.UserID,
			"domain":          result.Domain,
			"mood":            result.Mood,
			"recommendations": display,
			"generated_at":    result.GeneratedAt,
			"cache_hit":       result.CacheHit,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Similar answers GET /api/v1/catalog/:domain/items/:itemId/similar.
func (h *RecommendationHandler) Similar(c *gin.Context) {
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

	itemID := c.Param("itemId")
	count := 10
	if countStr := c.Query("count"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 && parsed <= 50 {
			count = parsed
		}
	}

	items, err := h.recommender.SimilarItems(domain, itemID, count)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "SIMILAR_ITEMS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id": itemID,
		"domain":  domain,
		"similar": items,
	})
}

func queryFloat(c *gin.Context, name string) float64 {
	value, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0
	}
	return value
}
