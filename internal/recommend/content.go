package recommend

import (
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/pkg/models"
)

// ContentFilter ranks catalog items by attribute and text similarity. It
// combines a closed-form metadata similarity (per domain policy) with a
// TF-IDF cosine over each item's concatenated text fields.
//
// AddItems rebuilds the whole vector space; there is no incremental corpus
// update. Queries are read-only against the built state.
type ContentFilter struct {
	mu sync.RWMutex

	policy   DomainPolicy
	analyzer *ContentAnalyzer

	items  []CatalogItem
	byID   map[string]CatalogItem
	tfidf  map[string]map[string]float64
	pairs  map[string]float64
	logger *logrus.Logger
}

func NewContentFilter(policy DomainPolicy, logger *logrus.Logger) *ContentFilter {
	return &ContentFilter{
		policy:   policy,
		analyzer: NewContentAnalyzer(),
		byID:     make(map[string]CatalogItem),
		tfidf:    make(map[string]map[string]float64),
		pairs:    make(map[string]float64),
		logger:   logger,
	}
}

// AddItems replaces or extends the catalog and rebuilds the full vector
// space: corpus, per-item TF-IDF vectors, and the pair similarity cache.
func (f *ContentFilter) AddItems(items []CatalogItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, item := range items {
		if _, ok := f.byID[item.ItemID()]; !ok {
			f.items = append(f.items, item)
		}
		f.byID[item.ItemID()] = item
	}

	documents := make([]Document, 0, len(f.items))
	for _, item := range f.items {
		documents = append(documents, Document{ID: item.ItemID(), Text: item.ItemText()})
	}
	f.analyzer.BuildCorpus(documents)

	f.tfidf = make(map[string]map[string]float64, len(f.items))
	for _, item := range f.items {
		f.tfidf[item.ItemID()] = f.analyzer.Vectorize(item.ItemText())
	}
	f.pairs = make(map[string]float64)

	f.logger.WithFields(logrus.Fields{
		"domain":     f.policy.Domain,
		"items":      len(f.items),
		"vocabulary": f.analyzer.VocabularySize(),
	}).Debug("Content filter vector space rebuilt")
}

// Item looks up a catalog entry by id.
func (f *ContentFilter) Item(id string) (CatalogItem, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	item, ok := f.byID[id]
	return item, ok
}

// Items returns the catalog in load order.
func (f *ContentFilter) Items() []CatalogItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]CatalogItem, len(f.items))
	copy(out, f.items)
	return out
}

// Similarity blends the policy's metadata similarity with the TF-IDF
// cosine. Unknown ids score 0. Results are cached per unordered pair.
func (f *ContentFilter) Similarity(idA, idB string) float64 {
	f.mu.RLock()
	itemA, okA := f.byID[idA]
	itemB, okB := f.byID[idB]
	if !okA || !okB {
		f.mu.RUnlock()
		return 0
	}
	key := pairKey(idA, idB)
	if sim, ok := f.pairs[key]; ok {
		f.mu.RUnlock()
		return sim
	}
	metaSim := f.policy.MetadataSimilarity(itemA, itemB)
	textSim := f.analyzer.CosineSimilarity(f.tfidf[idA], f.tfidf[idB])
	f.mu.RUnlock()

	sim := metaSim*f.policy.MetadataWeight + textSim*f.policy.TextWeight

	f.mu.Lock()
	f.pairs[key] = sim
	f.mu.Unlock()
	return sim
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// RecommendByMood filters the catalog to items whose tags intersect the
// mood's category bucket and ranks them by match count times quality
// rating. Unknown moods fall back to the policy's default bucket.
func (f *ContentFilter) RecommendByMood(mood models.MoodProfile, topK int) []models.ScoredItem {
	f.mu.RLock()
	defer f.mu.RUnlock()

	bucket := f.policy.MoodCategories[strings.ToLower(mood.Primary)]
	if len(bucket) == 0 {
		bucket = f.policy.MoodCategories[f.policy.FallbackMood]
	}
	bucketSet := make(map[string]struct{}, len(bucket))
	for _, c := range bucket {
		bucketSet[c] = struct{}{}
	}

	scored := make([]models.ScoredItem, 0, len(f.items))
	for _, item := range f.items {
		matches := 0
		for _, tag := range item.ItemTags() {
			if _, ok := bucketSet[tag]; ok {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		scored = append(scored, models.ScoredItem{
			ItemID:    item.ItemID(),
			Score:     float64(matches) * item.Quality(),
			Algorithm: "content_mood",
		})
	}

	sortScored(scored)
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// RecommendByHistory scores every unseen candidate as its mean pairwise
// similarity to the rated set. Empty history yields an empty result, not
// an error.
func (f *ContentFilter) RecommendByHistory(ratedIDs []string, topK int) []models.ScoredItem {
	if len(ratedIDs) == 0 {
		return nil
	}

	rated := make(map[string]struct{}, len(ratedIDs))
	for _, id := range ratedIDs {
		rated[id] = struct{}{}
	}

	f.mu.RLock()
	candidates := make([]string, 0, len(f.items))
	for _, item := range f.items {
		if _, seen := rated[item.ItemID()]; !seen {
			candidates = append(candidates, item.ItemID())
		}
	}
	f.mu.RUnlock()

	scored := make([]models.ScoredItem, 0, len(candidates))
	for _, candidateID := range candidates {
		var total float64
		for _, ratedID := range ratedIDs {
			total += f.Similarity(ratedID, candidateID)
		}
		scored = append(scored, models.ScoredItem{
			ItemID:    candidateID,
			Score:     total / float64(len(ratedIDs)),
			Algorithm: "content_history",
		})
	}

	sortScored(scored)
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// SimilarItems ranks the rest of the catalog by similarity to one item.
func (f *ContentFilter) SimilarItems(itemID string, topN int) []models.ScoredItem {
	f.mu.RLock()
	if _, ok := f.byID[itemID]; !ok {
		f.mu.RUnlock()
		return nil
	}
	others := make([]string, 0, len(f.items))
	for _, item := range f.items {
		if item.ItemID() != itemID {
			others = append(others, item.ItemID())
		}
	}
	f.mu.RUnlock()

	scored := make([]models.ScoredItem, 0, len(others))
	for _, otherID := range others {
		scored = append(scored, models.ScoredItem{
			ItemID:    otherID,
			Score:     f.Similarity(itemID, otherID),
			Algorithm: "content_similar",
		})
	}
	sortScored(scored)
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// sortScored orders by score descending with a deterministic id tie-break.
func sortScored(scored []models.ScoredItem) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ItemID < scored[j].ItemID
	})
}
