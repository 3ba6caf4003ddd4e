package recommend

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/pkg/models"
)

const (
	defaultContentWeight       = 0.7
	defaultCollaborativeWeight = 0.3
)

// HybridRecommender fuses the content and collaborative paths into one
// ranked list. One instance per domain is constructed at process start and
// reused across queries; construction and ingestion are expensive, queries
// are cheap and read-only.
type HybridRecommender struct {
	domain        models.Domain
	content       *ContentFilter
	collaborative *CollaborativeFilter

	contentWeight       float64
	collaborativeWeight float64

	logger *logrus.Logger
}

// HybridConfig carries the blend weights. Both must be >= 0; they are not
// required to sum to 1.
type HybridConfig struct {
	ContentWeight       float64
	CollaborativeWeight float64
}

func NewHybridRecommender(
	domain models.Domain,
	content *ContentFilter,
	collaborative *CollaborativeFilter,
	cfg HybridConfig,
	logger *logrus.Logger,
) *HybridRecommender {
	if cfg.ContentWeight < 0 {
		cfg.ContentWeight = defaultContentWeight
	}
	if cfg.CollaborativeWeight < 0 {
		cfg.CollaborativeWeight = defaultCollaborativeWeight
	}
	if cfg.ContentWeight == 0 && cfg.CollaborativeWeight == 0 {
		cfg.ContentWeight = defaultContentWeight
		cfg.CollaborativeWeight = defaultCollaborativeWeight
	}
	return &HybridRecommender{
		domain:              domain,
		content:             content,
		collaborative:       collaborative,
		contentWeight:       cfg.ContentWeight,
		collaborativeWeight: cfg.CollaborativeWeight,
		logger:              logger,
	}
}

func (h *HybridRecommender) Domain() models.Domain { return h.domain }

// LoadCatalog ingests catalog items: the content vector space is rebuilt in
// full and the collaborative filter learns the static quality fallbacks.
func (h *HybridRecommender) LoadCatalog(items []CatalogItem) {
	h.content.AddItems(items)
	h.collaborative.SetItemQuality(items)
}

// LoadRatings appends rating history and retrains the collaborative model
// when warranted. This is the exclusive writer phase; do not interleave
// with queries.
func (h *HybridRecommender) LoadRatings(ratings []models.Rating) {
	h.collaborative.AddRatings(ratings)
}

// Content exposes the underlying content filter for similar-item lookups.
func (h *HybridRecommender) Content() *ContentFilter { return h.content }

// Collaborative exposes the underlying collaborative filter.
func (h *HybridRecommender) Collaborative() *CollaborativeFilter { return h.collaborative }

// Recommend returns up to topK items ranked by the weighted blend of the
// normalized content and collaborative scores. Items present in seen are
// never returned. A mood with a non-empty primary label selects the
// mood-driven content path; otherwise the seen history drives content
// scoring. An item surfaced by only one source contributes zero from the
// other.
func (h *HybridRecommender) Recommend(userID string, mood models.MoodProfile, seen []string, topK int) []models.Recommendation {
	if topK <= 0 {
		return nil
	}
	candidates := topK * 2

	var contentRecs []models.ScoredItem
	if mood.Primary != "" {
		contentRecs = h.content.RecommendByMood(mood, candidates)
		normalizeByMax(contentRecs, mood.ConfidenceFactor())
	} else {
		// Mean pairwise similarity is already in [0, 1].
		contentRecs = h.content.RecommendByHistory(seen, candidates)
	}

	collaborativeRecs := h.collaborative.Recommend(userID, candidates)

	seenSet := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	type fused struct {
		contentScore       float64
		collaborativeScore float64
	}
	scores := make(map[string]*fused)

	for _, rec := range contentRecs {
		if _, skip := seenSet[rec.ItemID]; skip {
			continue
		}
		scores[rec.ItemID] = &fused{contentScore: clamp01(rec.Score)}
	}
	for _, rec := range collaborativeRecs {
		if _, skip := seenSet[rec.ItemID]; skip {
			continue
		}
		normalized := clamp01(rec.Score / ratingMax)
		if entry, ok := scores[rec.ItemID]; ok {
			entry.collaborativeScore = normalized
		} else {
			scores[rec.ItemID] = &fused{collaborativeScore: normalized}
		}
	}

	results := make([]models.Recommendation, 0, len(scores))
	for itemID, entry := range scores {
		title := itemID
		if item, ok := h.content.Item(itemID); ok {
			title = item.ItemTitle()
		}
		results = append(results, models.Recommendation{
			ItemID:             itemID,
			Title:              title,
			ContentScore:       entry.contentScore,
			CollaborativeScore: entry.collaborativeScore,
			HybridScore:        h.contentWeight*entry.contentScore + h.collaborativeWeight*entry.collaborativeScore,
		})
	}

	// Equal hybrid scores break by item id, deliberately: map iteration
	// order must never leak into the ranking.
	sort.Slice(results, func(i, j int) bool {
		if results[i].HybridScore != results[j].HybridScore {
			return results[i].HybridScore > results[j].HybridScore
		}
		return results[i].ItemID < results[j].ItemID
	})

	if len(results) > topK {
		results = results[:topK]
	}
	for i := range results {
		results[i].Position = i + 1
	}

	h.logger.WithFields(logrus.Fields{
		"domain":  h.domain,
		"user_id": userID,
		"mood":    mood.Primary,
		"results": len(results),
	}).Debug("Hybrid recommendation computed")

	return results
}

// normalizeByMax rescales raw mood-path scores into [0, 1] and applies the
// mood confidence factor.
func normalizeByMax(recs []models.ScoredItem, factor float64) {
	var max float64
	for _, r := range recs {
		if r.Score > max {
			max = r.Score
		}
	}
	if max == 0 {
		return
	}
	for i := range recs {
		recs[i].Score = recs[i].Score / max * factor
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
