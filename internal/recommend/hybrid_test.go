package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberan/tastemix/pkg/models"
)

func newMovieRecommender(t *testing.T) *HybridRecommender {
	t.Helper()
	mf := NewMatrixFactorization(20, rand.New(rand.NewSource(42)))
	collab := NewCollaborativeFilter(CollaborativeConfig{MFThreshold: 10, MFEpochs: 50}, mf, testLogger())
	content := NewContentFilter(MoviePolicy(), testLogger())
	rec := NewHybridRecommender(models.DomainMovie, content, collab, HybridConfig{
		ContentWeight:       0.7,
		CollaborativeWeight: 0.3,
	}, testLogger())

	rec.LoadCatalog(testMovies())
	rec.LoadRatings([]models.Rating{
		ratingOf("user1", "m1", 5), ratingOf("user1", "m2", 4.5), ratingOf("user1", "m3", 4),
		ratingOf("user2", "m1", 5), ratingOf("user2", "m4", 5), ratingOf("user2", "m5", 3.5),
		ratingOf("user3", "m3", 5), ratingOf("user3", "m5", 4.5), ratingOf("user3", "m2", 4),
	})
	return rec
}

func TestHybridRecommender_MovieScenario(t *testing.T) {
	rec := newMovieRecommender(t)

	history := []string{"m1", "m2", "m3"}
	results := rec.Recommend("user1", models.MoodProfile{}, history, 2)

	require.Len(t, results, 2)

	ids := []string{results[0].ItemID, results[1].ItemID}
	assert.ElementsMatch(t, []string{"m4", "m5"}, ids)

	// Interstellar shares Sci-Fi/Drama and a director with the history and
	// carries the stronger collaborative signal; it must not rank below
	// Forrest Gump.
	var m4Score, m5Score float64
	for _, r := range results {
		switch r.ItemID {
		case "m4":
			m4Score = r.HybridScore
		case "m5":
			m5Score = r.HybridScore
		}
	}
	assert.GreaterOrEqual(t, m5Score, m4Score)
}

func TestHybridRecommender_Contract(t *testing.T) {
	rec := newMovieRecommender(t)

	t.Run("seen items are never returned", func(t *testing.T) {
		seen := []string{"m1", "m2", "m3", "m5"}
		for _, r := range rec.Recommend("user1", models.MoodProfile{}, seen, 10) {
			assert.NotContains(t, seen, r.ItemID)
		}
	})

	t.Run("at most topK results in non-increasing order", func(t *testing.T) {
		results := rec.Recommend("user1", models.MoodProfile{}, []string{"m1"}, 3)
		assert.LessOrEqual(t, len(results), 3)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].HybridScore, results[i].HybridScore)
		}
	})

	t.Run("scores stay in the unit interval", func(t *testing.T) {
		for _, r := range rec.Recommend("user1", models.MoodProfile{}, []string{"m1"}, 5) {
			assert.GreaterOrEqual(t, r.ContentScore, 0.0)
			assert.LessOrEqual(t, r.ContentScore, 1.0)
			assert.GreaterOrEqual(t, r.CollaborativeScore, 0.0)
			assert.LessOrEqual(t, r.CollaborativeScore, 1.0)
			assert.GreaterOrEqual(t, r.HybridScore, 0.0)
			assert.LessOrEqual(t, r.HybridScore, 1.0)
		}
	})

	t.Run("positions are sequential from one", func(t *testing.T) {
		results := rec.Recommend("user1", models.MoodProfile{}, nil, 5)
		for i, r := range results {
			assert.Equal(t, i+1, r.Position)
		}
	})

	t.Run("unknown user still gets content-driven results", func(t *testing.T) {
		results := rec.Recommend("stranger", models.MoodProfile{Primary: "thoughtful"}, nil, 3)
		assert.NotEmpty(t, results)
		for _, r := range results {
			assert.Equal(t, 0.0, r.CollaborativeScore)
		}
	})

	t.Run("zero topK yields nothing", func(t *testing.T) {
		assert.Empty(t, rec.Recommend("user1", models.MoodProfile{}, nil, 0))
	})
}

func TestHybridRecommender_MoodPath(t *testing.T) {
	rec := newMovieRecommender(t)

	t.Run("mood confidence scales content scores without reordering", func(t *testing.T) {
		confident := rec.Recommend("stranger", models.MoodProfile{Primary: "thoughtful", Confidence: 100}, nil, 5)
		hesitant := rec.Recommend("stranger", models.MoodProfile{Primary: "thoughtful", Confidence: 50}, nil, 5)
		require.Equal(t, len(confident), len(hesitant))
		for i := range confident {
			assert.Equal(t, confident[i].ItemID, hesitant[i].ItemID)
			assert.InDelta(t, confident[i].ContentScore/2, hesitant[i].ContentScore, 1e-9)
		}
	})

	t.Run("mood bucket filters the catalog", func(t *testing.T) {
		// energetic bucket: Action, Thriller, Adventure. Only Inception and
		// Interstellar qualify.
		results := rec.Recommend("stranger", models.MoodProfile{Primary: "energetic"}, nil, 10)
		ids := make([]string, 0, len(results))
		for _, r := range results {
			ids = append(ids, r.ItemID)
		}
		assert.ElementsMatch(t, []string{"m3", "m5"}, ids)
	})
}

func TestHybridRecommender_TieBreak(t *testing.T) {
	mf := NewMatrixFactorization(20, rand.New(rand.NewSource(1)))
	collab := NewCollaborativeFilter(CollaborativeConfig{MFThreshold: 100}, mf, testLogger())
	content := NewContentFilter(PodcastPolicy(), testLogger())
	rec := NewHybridRecommender(models.DomainPodcast, content, collab, HybridConfig{
		ContentWeight:       0.7,
		CollaborativeWeight: 0.3,
	}, testLogger())

	// Two podcasts with identical mood-bucket footprints and ratings.
	rec.LoadCatalog([]CatalogItem{
		models.Podcast{ID: "b", Title: "B", Categories: []string{"Comedy"}, Rating: 4.0},
		models.Podcast{ID: "a", Title: "A", Categories: []string{"Comedy"}, Rating: 4.0},
	})

	results := rec.Recommend("u", models.MoodProfile{Primary: "happy"}, nil, 2)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ItemID)
	assert.Equal(t, "b", results[1].ItemID)
}
