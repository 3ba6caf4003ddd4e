package recommend

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/marberan/tastemix/pkg/models"
)

const (
	defaultFactors      = 20
	defaultLearningRate = 0.01
	defaultRegulation   = 0.02
	lrDecay             = 0.99
	ratingMax           = 5.0
	neutralRating       = 2.5
)

// MatrixFactorization learns latent taste vectors from sparse ratings via
// regularized SGD and predicts missing entries by dot product. The factor
// maps are owned exclusively by one instance; Train is the only mutation
// point.
type MatrixFactorization struct {
	userFactors map[string][]float64
	itemFactors map[string][]float64

	numFactors     int
	learningRate   float64
	regularization float64
	rng            *rand.Rand
}

// NewMatrixFactorization creates an untrained model. The rng handle makes
// training reproducible under a fixed seed; production callers pass a
// time-seeded source.
func NewMatrixFactorization(numFactors int, rng *rand.Rand) *MatrixFactorization {
	if numFactors <= 0 {
		numFactors = defaultFactors
	}
	return &MatrixFactorization{
		userFactors:    make(map[string][]float64),
		itemFactors:    make(map[string][]float64),
		numFactors:     numFactors,
		learningRate:   defaultLearningRate,
		regularization: defaultRegulation,
		rng:            rng,
	}
}

func (mf *MatrixFactorization) initFactors() []float64 {
	factors := make([]float64, mf.numFactors)
	for i := range factors {
		factors[i] = mf.rng.Float64() * 0.1
	}
	return factors
}

// Train runs SGD over the observed ratings. Every observed user and item id
// gets a fresh small-random factor vector; each epoch shuffles the ratings,
// applies the regularized gradient step, then decays the learning rate.
func (mf *MatrixFactorization) Train(ratings []models.Rating, epochs int) {
	if len(ratings) == 0 {
		return
	}
	if epochs <= 0 {
		epochs = 50
	}

	mf.userFactors = make(map[string][]float64)
	mf.itemFactors = make(map[string][]float64)
	mf.learningRate = defaultLearningRate

	for _, r := range ratings {
		if _, ok := mf.userFactors[r.UserID]; !ok {
			mf.userFactors[r.UserID] = mf.initFactors()
		}
		if _, ok := mf.itemFactors[r.ItemID]; !ok {
			mf.itemFactors[r.ItemID] = mf.initFactors()
		}
	}

	shuffled := make([]models.Rating, len(ratings))
	copy(shuffled, ratings)

	for epoch := 0; epoch < epochs; epoch++ {
		mf.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for _, r := range shuffled {
			userVec := mf.userFactors[r.UserID]
			itemVec := mf.itemFactors[r.ItemID]

			err := r.Rating - floats.Dot(userVec, itemVec)

			for k := 0; k < mf.numFactors; k++ {
				userVal := userVec[k]
				itemVal := itemVec[k]
				userVec[k] += mf.learningRate * (err*itemVal - mf.regularization*userVal)
				itemVec[k] += mf.learningRate * (err*userVal - mf.regularization*itemVal)
			}
		}

		mf.learningRate *= lrDecay
	}
}

// Knows reports whether both ids were observed during training.
func (mf *MatrixFactorization) Knows(userID, itemID string) bool {
	_, u := mf.userFactors[userID]
	_, i := mf.itemFactors[itemID]
	return u && i
}

// Predict returns the dot product of the latent vectors clamped to
// [0, ratingMax]. Ids never observed during training get the neutral
// midpoint; this is the documented cold-start fallback, not an error.
func (mf *MatrixFactorization) Predict(userID, itemID string) float64 {
	userVec, uok := mf.userFactors[userID]
	itemVec, iok := mf.itemFactors[itemID]
	if !uok || !iok {
		return neutralRating
	}

	prediction := floats.Dot(userVec, itemVec)
	if prediction < 0 {
		return 0
	}
	if prediction > ratingMax {
		return ratingMax
	}
	return prediction
}

// Recommend predicts a rating for every candidate and returns the topN in
// descending order, ties broken by item id. Unknown users get an empty
// result.
func (mf *MatrixFactorization) Recommend(userID string, candidateItemIDs []string, topN int) []models.ScoredItem {
	if _, ok := mf.userFactors[userID]; !ok {
		return nil
	}

	scored := make([]models.ScoredItem, 0, len(candidateItemIDs))
	for _, itemID := range candidateItemIDs {
		scored = append(scored, models.ScoredItem{
			ItemID:    itemID,
			Score:     mf.Predict(userID, itemID),
			Algorithm: "matrix_factorization",
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ItemID < scored[j].ItemID
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}
