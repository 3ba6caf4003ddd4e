package models

import "time"

// ScoredItem is a single-source score emitted by one recommendation path.
type ScoredItem struct {
	ItemID    string  `json:"item_id"`
	Score     float64 `json:"score"`
	Algorithm string  `json:"algorithm"`
}

// Recommendation is the fused result of the content and collaborative
// paths. All scores are in [0, 1]; handlers rescale for display.
type Recommendation struct {
	ItemID             string  `json:"item_id"`
	Title              string  `json:"title"`
	ContentScore       float64 `json:"content_score"`
	CollaborativeScore float64 `json:"collaborative_score"`
	HybridScore        float64 `json:"hybrid_score"`
	Position           int     `json:"position"`
}

type RecommendationRequest struct {
	UserID string      `json:"user_id" validate:"required"`
	Domain string      `json:"domain" validate:"required,oneof=movie music podcast"`
	Mood   MoodProfile `json:"mood"`
	Seen   []string    `json:"seen,omitempty"`
	Count  int         `json:"count" validate:"omitempty,min=1,max=100"`
}

type RecommendationResponse struct {
	UserID          string           `json:"user_id"`
	Domain          Domain           `json:"domain"`
	Mood            string           `json:"mood,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
	CacheHit        bool             `json:"cache_hit"`
}

// DisplayRecommendation is the API-boundary form with 0-100 match scores.
type DisplayRecommendation struct {
	ItemID     string `json:"item_id"`
	Title      string `json:"title"`
	MatchScore int    `json:"match_score"`
	Position   int    `json:"position"`
}

// Display rescales a core recommendation to the 0-100 integer boundary
// contract.
func (r Recommendation) Display() DisplayRecommendation {
	score := r.HybridScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return DisplayRecommendation{
		ItemID:     r.ItemID,
		Title:      r.Title,
		MatchScore: int(score*100 + 0.5),
		Position:   r.Position,
	}
}
