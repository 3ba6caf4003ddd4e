package recommend

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/marberan/tastemix/pkg/models"
)

const (
	defaultMFThreshold = 10
	defaultMFEpochs    = 50
	neighborCount      = 10
)

type userProfile struct {
	ratings      map[string]float64
	ratingVector []float64
}

// CollaborativeFilter scores items by the preferences of similar users.
// The plain cosine path operates on dense user x item rating vectors with
// missing ratings treated as 0; once the cumulative rating count exceeds
// the threshold, a matrix-factorization model is trained and becomes the
// primary prediction path, with the cosine path remaining as fallback.
//
// AddRatings and queries follow an exclusive-writer contract: readers see
// either the pre-training or fully-post-training state.
type CollaborativeFilter struct {
	mu sync.RWMutex

	profiles    map[string]*userProfile
	itemIDs     []string
	itemIndex   map[string]int
	itemQuality map[string]float64
	ratings     []models.Rating

	mf          *MatrixFactorization
	useMF       bool
	mfThreshold int
	mfEpochs    int

	logger *logrus.Logger
}

// CollaborativeConfig tunes the matrix-factorization upgrade path.
type CollaborativeConfig struct {
	MFThreshold int
	MFEpochs    int
	MFFactors   int
}

func NewCollaborativeFilter(cfg CollaborativeConfig, mf *MatrixFactorization, logger *logrus.Logger) *CollaborativeFilter {
	if cfg.MFThreshold <= 0 {
		cfg.MFThreshold = defaultMFThreshold
	}
	if cfg.MFEpochs <= 0 {
		cfg.MFEpochs = defaultMFEpochs
	}
	return &CollaborativeFilter{
		profiles:    make(map[string]*userProfile),
		itemIndex:   make(map[string]int),
		itemQuality: make(map[string]float64),
		mf:          mf,
		mfThreshold: cfg.MFThreshold,
		mfEpochs:    cfg.MFEpochs,
		logger:      logger,
	}
}

// SetItemQuality registers static quality ratings used as the MF cold-start
// fallback for items the model has never seen.
func (cf *CollaborativeFilter) SetItemQuality(items []CatalogItem) {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	for _, item := range items {
		cf.itemQuality[item.ItemID()] = item.Quality()
	}
}

// AddRatings registers new rating triples, rebuilds the dense rating
// vectors, and retrains the factorization model once enough signal has
// accumulated. This is the exclusive writer phase.
func (cf *CollaborativeFilter) AddRatings(ratings []models.Rating) {
	cf.mu.Lock()
	defer cf.mu.Unlock()

	for _, r := range ratings {
		if _, ok := cf.itemIndex[r.ItemID]; !ok {
			cf.itemIndex[r.ItemID] = len(cf.itemIDs)
			cf.itemIDs = append(cf.itemIDs, r.ItemID)
		}
		profile, ok := cf.profiles[r.UserID]
		if !ok {
			profile = &userProfile{ratings: make(map[string]float64)}
			cf.profiles[r.UserID] = profile
		}
		profile.ratings[r.ItemID] = r.Rating
	}
	cf.ratings = append(cf.ratings, ratings...)

	cf.rebuildVectors()

	if len(cf.ratings) > cf.mfThreshold {
		cf.mf.Train(cf.ratings, cf.mfEpochs)
		cf.useMF = true
		cf.logger.WithFields(logrus.Fields{
			"ratings": len(cf.ratings),
			"users":   len(cf.profiles),
			"items":   len(cf.itemIDs),
		}).Debug("Collaborative filter switched to matrix factorization")
	}
}

// rebuildVectors densifies each user's ratings over the full item axis.
// Missing ratings are 0, which conflates "unrated" with the lowest rating
// in the cosine computation; callers rely on that behavior.
func (cf *CollaborativeFilter) rebuildVectors() {
	for _, profile := range cf.profiles {
		vec := make([]float64, len(cf.itemIDs))
		for itemID, rating := range profile.ratings {
			vec[cf.itemIndex[itemID]] = rating
		}
		profile.ratingVector = vec
	}
}

// UsesMatrixFactorization reports whether the MF path is warmed up.
func (cf *CollaborativeFilter) UsesMatrixFactorization() bool {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	return cf.useMF
}

// RatingCount returns the cumulative number of ingested ratings.
func (cf *CollaborativeFilter) RatingCount() int {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	return len(cf.ratings)
}

func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	magA := floats.Norm(a, 2)
	magB := floats.Norm(b, 2)
	if magA == 0 || magB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (magA * magB)
}

// Predict estimates the rating a user would give an item, on the 0-5
// scale. The MF path answers when warmed up; an item the model never saw
// falls back to its static quality rating. On the cosine path an item with
// no ratings from any user scores 0.
func (cf *CollaborativeFilter) Predict(userID, itemID string) float64 {
	cf.mu.RLock()
	defer cf.mu.RUnlock()

	if cf.useMF {
		if cf.mf.Knows(userID, itemID) {
			return cf.mf.Predict(userID, itemID)
		}
		if q, ok := cf.itemQuality[itemID]; ok {
			return q
		}
		return neutralRating
	}
	return cf.neighborScore(userID, itemID)
}

// neighborScore is the similarity-weighted average rating for one item
// from users similar to the target. Callers hold at least a read lock.
func (cf *CollaborativeFilter) neighborScore(userID, itemID string) float64 {
	profile, ok := cf.profiles[userID]
	if !ok {
		return 0
	}

	type neighbor struct {
		id  string
		sim float64
	}
	var neighbors []neighbor
	for otherID, other := range cf.profiles {
		if otherID == userID {
			continue
		}
		if _, rated := other.ratings[itemID]; !rated {
			continue
		}
		if sim := cosine(profile.ratingVector, other.ratingVector); sim > 0 {
			neighbors = append(neighbors, neighbor{otherID, sim})
		}
	}
	if len(neighbors) == 0 {
		return 0
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].id < neighbors[j].id
	})
	if len(neighbors) > neighborCount {
		neighbors = neighbors[:neighborCount]
	}

	var weightedSum, simSum float64
	for _, n := range neighbors {
		weightedSum += cf.profiles[n.id].ratings[itemID] * n.sim
		simSum += n.sim
	}
	if simSum == 0 {
		return 0
	}
	return weightedSum / simSum
}

// Recommend returns topK unrated items for the user, scored on the 0-5
// scale. Unknown users get an empty result.
func (cf *CollaborativeFilter) Recommend(userID string, topK int) []models.ScoredItem {
	cf.mu.RLock()
	defer cf.mu.RUnlock()

	profile, ok := cf.profiles[userID]
	if !ok {
		return nil
	}

	unrated := make([]string, 0, len(cf.itemIDs))
	for _, itemID := range cf.itemIDs {
		if _, rated := profile.ratings[itemID]; !rated {
			unrated = append(unrated, itemID)
		}
	}

	if cf.useMF {
		return cf.mf.Recommend(userID, unrated, topK)
	}

	return cf.neighborRecommend(userID, profile, topK)
}

// neighborRecommend is the legacy cosine path: each unrated item scores the
// sum of similarity-weighted ratings from the top similar users who rated
// it.
func (cf *CollaborativeFilter) neighborRecommend(userID string, profile *userProfile, topK int) []models.ScoredItem {
	type neighbor struct {
		id  string
		sim float64
	}
	var neighbors []neighbor
	for otherID, other := range cf.profiles {
		if otherID == userID {
			continue
		}
		if sim := cosine(profile.ratingVector, other.ratingVector); sim > 0 {
			neighbors = append(neighbors, neighbor{otherID, sim})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].id < neighbors[j].id
	})
	if len(neighbors) > neighborCount {
		neighbors = neighbors[:neighborCount]
	}

	scores := make(map[string]float64)
	for _, n := range neighbors {
		for itemID, rating := range cf.profiles[n.id].ratings {
			if _, rated := profile.ratings[itemID]; rated {
				continue
			}
			scores[itemID] += rating * n.sim
		}
	}

	scored := make([]models.ScoredItem, 0, len(scores))
	for itemID, score := range scores {
		scored = append(scored, models.ScoredItem{
			ItemID:    itemID,
			Score:     score,
			Algorithm: "user_cosine",
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ItemID < scored[j].ItemID
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
