package models

import "time"

// Rating is an observed user-item interaction. Ratings are append-only;
// deduplication of (UserID, ItemID) pairs is the loader's responsibility.
type Rating struct {
	UserID    string    `json:"user_id" validate:"required"`
	ItemID    string    `json:"item_id" validate:"required"`
	Rating    float64   `json:"rating" validate:"min=0,max=5"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackEvent is the ingestion form of a rating. Like/dislike events are
// mapped to ratings at the edges of the 0-5 scale before they reach the
// collaborative filter.
type FeedbackEvent struct {
	UserID       string  `json:"user_id" validate:"required"`
	ItemID       string  `json:"item_id" validate:"required"`
	Domain       string  `json:"domain" validate:"required,oneof=movie music podcast"`
	FeedbackType string  `json:"feedback_type" validate:"required,oneof=like dislike rating"`
	Rating       float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
}

const (
	likeRating    = 5.0
	dislikeRating = 1.0
)

// AsRating converts a feedback event into the rating fed to the engine.
func (f FeedbackEvent) AsRating(now time.Time) Rating {
	value := f.Rating
	switch f.FeedbackType {
	case "like":
		value = likeRating
	case "dislike":
		value = dislikeRating
	}
	return Rating{
		UserID:    f.UserID,
		ItemID:    f.ItemID,
		Rating:    value,
		Timestamp: now,
	}
}
