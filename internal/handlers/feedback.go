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

type FeedbackHandler struct {
	recommender *services.RecommenderService
	validator   *validation.SchemaValidator
	logger      *logrus.Logger
}

func NewFeedbackHandler(recommender *services.RecommenderService, validator *validation.SchemaValidator, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		recommender: recommender,
		validator:   validator,
		logger:      logger,
	}
}

// Post answers POST /api/v1/feedback with a JSON array of feedback events.
// The whole batch is schema-checked before any event mutates an engine, so
// a rejected batch leaves all rating histories untouched.
func (h *FeedbackHandler) Post(c *gin.Context) {
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

	var rawEvents []json.RawMessage
	if err := json.Unmarshal(body, &rawEvents); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Request body must be a JSON array of feedback events",
			},
		})
		return
	}
	if len(rawEvents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "EMPTY_BATCH",
				"message": "Feedback batch must contain at least one event",
			},
		})
		return
	}

	events := make([]models.FeedbackEvent, 0, len(rawEvents))
	for i, raw := range rawEvents {
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_FEEDBACK_EVENT",
					"message": "Feedback event is not valid JSON",
					"index":   i,
				},
			})
			return
		}
		if result := h.validator.ValidateFeedback(generic); !result.Valid {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "SCHEMA_VALIDATION_FAILED",
					"message": "Feedback event failed schema validation",
					"index":   i,
					"details": result.Errors,
				},
			})
			return
		}

		var event models.FeedbackEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_FEEDBACK_EVENT",
					"message": err.Error(),
					"index":   i,
				},
			})
			return
		}
		events = append(events, event)
	}

	if err := h.recommender.AddFeedback(events); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "FEEDBACK_REJECTED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"accepted": len(events),
	})
}
