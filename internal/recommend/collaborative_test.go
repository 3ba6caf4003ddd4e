package recommend

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberan/tastemix/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestCollaborativeFilter(threshold int) *CollaborativeFilter {
	mf := NewMatrixFactorization(20, rand.New(rand.NewSource(42)))
	return NewCollaborativeFilter(CollaborativeConfig{MFThreshold: threshold, MFEpochs: 50}, mf, testLogger())
}

func ratingOf(user, item string, value float64) models.Rating {
	return models.Rating{UserID: user, ItemID: item, Rating: value, Timestamp: time.Now()}
}

func TestCollaborativeFilter_CosinePath(t *testing.T) {
	cf := newTestCollaborativeFilter(100) // threshold high enough to stay on cosine

	cf.AddRatings([]models.Rating{
		ratingOf("u1", "a", 5), ratingOf("u1", "b", 4),
		ratingOf("u2", "a", 5), ratingOf("u2", "b", 4), ratingOf("u2", "c", 5),
		ratingOf("u3", "a", 1), ratingOf("u3", "d", 5),
	})
	require.False(t, cf.UsesMatrixFactorization())

	t.Run("unknown user gets empty recommendations", func(t *testing.T) {
		assert.Empty(t, cf.Recommend("ghost", 5))
	})

	t.Run("items favored by similar users rank first", func(t *testing.T) {
		recs := cf.Recommend("u1", 5)
		require.NotEmpty(t, recs)
		// u2 agrees with u1 far more than u3 does, so u2's unseen pick
		// "c" outranks u3's "d".
		assert.Equal(t, "c", recs[0].ItemID)
	})

	t.Run("item with no ratings scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, cf.Predict("u1", "unrated-item"))
	})

	t.Run("already rated items are never recommended", func(t *testing.T) {
		for _, rec := range cf.Recommend("u1", 10) {
			assert.NotContains(t, []string{"a", "b"}, rec.ItemID)
		}
	})
}

func TestCollaborativeFilter_MatrixFactorizationSwitch(t *testing.T) {
	cf := newTestCollaborativeFilter(10)

	// 9 seed ratings: below the threshold, cosine path.
	ratings := []models.Rating{
		ratingOf("u1", "m1", 5), ratingOf("u1", "m2", 4.5), ratingOf("u1", "m3", 4),
		ratingOf("u2", "m1", 5), ratingOf("u2", "m4", 5), ratingOf("u2", "m5", 3.5),
		ratingOf("u3", "m3", 5), ratingOf("u3", "m5", 4.5), ratingOf("u3", "m2", 4),
	}
	cf.AddRatings(ratings)
	assert.False(t, cf.UsesMatrixFactorization())

	// Two more pushes the cumulative count to 11 and flips the switch.
	cf.AddRatings([]models.Rating{
		ratingOf("u1", "m4", 3), ratingOf("u2", "m2", 4),
	})
	require.Equal(t, 11, cf.RatingCount())
	assert.True(t, cf.UsesMatrixFactorization())

	t.Run("predict routes through the factorization model", func(t *testing.T) {
		// The cosine path would score an unrated item for an unknown user
		// as 0; MF answers with its learned estimate for known pairs.
		p := cf.Predict("u1", "m5")
		assert.Greater(t, p, 0.0)
		assert.LessOrEqual(t, p, 5.0)
	})

	t.Run("MF-unknown item falls back to static quality", func(t *testing.T) {
		cf.SetItemQuality([]CatalogItem{
			models.Podcast{ID: "fresh", Title: "Fresh", Categories: []string{"Science"}, Rating: 4.2},
		})
		assert.Equal(t, 4.2, cf.Predict("u1", "fresh"))
	})

	t.Run("MF-unknown item without quality gets the neutral default", func(t *testing.T) {
		assert.Equal(t, 2.5, cf.Predict("u1", "void"))
	})

	t.Run("recommendations stay within the rating range", func(t *testing.T) {
		for _, rec := range cf.Recommend("u1", 10) {
			assert.GreaterOrEqual(t, rec.Score, 0.0)
			assert.LessOrEqual(t, rec.Score, 5.0)
		}
	})
}

func TestCollaborativeFilter_EmptyState(t *testing.T) {
	cf := newTestCollaborativeFilter(10)
	assert.Empty(t, cf.Recommend("anyone", 5))
	assert.Equal(t, 0.0, cf.Predict("anyone", "anything"))
}

func TestCollaborativeFilter_ManyUsersScale(t *testing.T) {
	cf := newTestCollaborativeFilter(1000)

	var ratings []models.Rating
	for u := 0; u < 30; u++ {
		for i := 0; i < 5; i++ {
			ratings = append(ratings, ratingOf(
				fmt.Sprintf("user%d", u),
				fmt.Sprintf("item%d", (u+i)%12),
				float64(1+(u+i)%5),
			))
		}
	}
	cf.AddRatings(ratings)

	recs := cf.Recommend("user0", 5)
	assert.LessOrEqual(t, len(recs), 5)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
}
