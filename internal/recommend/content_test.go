package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberan/tastemix/pkg/models"
)

func testMovies() []CatalogItem {
	return []CatalogItem{
		models.Movie{
			ID: "m1", Title: "The Shawshank Redemption",
			Genres: []string{"Drama", "Crime"},
			Cast:   []string{"Tim Robbins", "Morgan Freeman"}, Director: "Frank Darabont",
			Overview: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			Rating:   9.3,
		},
		models.Movie{
			ID: "m2", Title: "The Godfather",
			Genres: []string{"Crime", "Drama"},
			Cast:   []string{"Marlon Brando", "Al Pacino"}, Director: "Francis Ford Coppola",
			Overview: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
			Rating:   9.2,
		},
		models.Movie{
			ID: "m3", Title: "Inception",
			Genres: []string{"Action", "Sci-Fi", "Thriller"},
			Cast:   []string{"Leonardo DiCaprio", "Marion Cotillard"}, Director: "Christopher Nolan",
			Overview: "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea.",
			Rating:   8.8,
		},
		models.Movie{
			ID: "m4", Title: "Forrest Gump",
			Genres: []string{"Drama", "Romance"},
			Cast:   []string{"Tom Hanks", "Sally Field"}, Director: "Robert Zemeckis",
			Overview: "The presidencies of Kennedy and Johnson unfold through the perspective of an Alabama man with an IQ of 75.",
			Rating:   8.8,
		},
		models.Movie{
			ID: "m5", Title: "Interstellar",
			Genres: []string{"Adventure", "Drama", "Sci-Fi"},
			Cast:   []string{"Matthew McConaughey", "Anne Hathaway"}, Director: "Christopher Nolan",
			Overview: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
			Rating:   8.6,
		},
	}
}

func testPodcasts() []CatalogItem {
	return []CatalogItem{
		models.Podcast{ID: "p1", Title: "Night Stories", Host: "Ana Reeve",
			Categories: []string{"Story", "Personal"}, Rating: 4.6,
			Description: "Intimate first-person stories told after dark."},
		models.Podcast{ID: "p2", Title: "Lab Notes", Host: "Dev Okafor",
			Categories: []string{"Science", "Education"}, Rating: 4.8,
			Description: "Researchers explain what they actually do all day."},
		models.Podcast{ID: "p3", Title: "The Archive Room", Host: "Ana Reeve",
			Categories: []string{"Documentary", "Story"}, Rating: 4.2,
			Description: "Forgotten events reconstructed from primary sources."},
		models.Podcast{ID: "p4", Title: "Punchline Radio", Host: "Milo Frank",
			Categories: []string{"Comedy", "Entertainment"}, Rating: 4.0,
			Description: "Stand-up comedians dissect their worst sets."},
	}
}

func newMovieContentFilter(t *testing.T) *ContentFilter {
	t.Helper()
	f := NewContentFilter(MoviePolicy(), testLogger())
	f.AddItems(testMovies())
	return f
}

func TestContentFilter_Similarity(t *testing.T) {
	f := newMovieContentFilter(t)

	t.Run("unknown ids score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, f.Similarity("m1", "nope"))
		assert.Equal(t, 0.0, f.Similarity("nope", "m1"))
	})

	t.Run("similarity is symmetric", func(t *testing.T) {
		assert.InDelta(t, f.Similarity("m1", "m2"), f.Similarity("m2", "m1"), 1e-12)
	})

	t.Run("shared director and genre outweigh disjoint metadata", func(t *testing.T) {
		// Inception and Interstellar share Sci-Fi and Christopher Nolan;
		// Inception and Forrest Gump share nothing structural.
		assert.Greater(t, f.Similarity("m3", "m5"), f.Similarity("m3", "m4"))
	})
}

func TestContentFilter_RecommendByHistory(t *testing.T) {
	f := newMovieContentFilter(t)

	t.Run("empty history yields empty result", func(t *testing.T) {
		assert.Empty(t, f.RecommendByHistory(nil, 5))
	})

	t.Run("rated items are excluded and scores are mean similarities", func(t *testing.T) {
		recs := f.RecommendByHistory([]string{"m1", "m2", "m3"}, 5)
		require.Len(t, recs, 2)
		ids := []string{recs[0].ItemID, recs[1].ItemID}
		assert.ElementsMatch(t, []string{"m4", "m5"}, ids)
		for _, rec := range recs {
			assert.GreaterOrEqual(t, rec.Score, 0.0)
			assert.LessOrEqual(t, rec.Score, 1.0)
		}
		assert.GreaterOrEqual(t, recs[0].Score, recs[1].Score)
	})

	t.Run("topK truncates", func(t *testing.T) {
		recs := f.RecommendByHistory([]string{"m1"}, 2)
		assert.Len(t, recs, 2)
	})
}

func TestContentFilter_RecommendByMood(t *testing.T) {
	f := NewContentFilter(PodcastPolicy(), testLogger())
	f.AddItems(testPodcasts())

	t.Run("sad mood returns only story, personal and documentary podcasts", func(t *testing.T) {
		recs := f.RecommendByMood(models.MoodProfile{Primary: "sad"}, 10)
		require.NotEmpty(t, recs)

		allowed := map[string]struct{}{"Story": {}, "Personal": {}, "Documentary": {}}
		for _, rec := range recs {
			item, ok := f.Item(rec.ItemID)
			require.True(t, ok)
			matched := false
			for _, cat := range item.ItemTags() {
				if _, hit := allowed[cat]; hit {
					matched = true
				}
			}
			assert.True(t, matched, "item %s has no category in the sad bucket", rec.ItemID)
		}
		// Punchline Radio (Comedy/Entertainment) must never surface.
		for _, rec := range recs {
			assert.NotEqual(t, "p4", rec.ItemID)
		}
	})

	t.Run("ranking is match count times rating", func(t *testing.T) {
		recs := f.RecommendByMood(models.MoodProfile{Primary: "sad"}, 10)
		require.Len(t, recs, 2)
		// p1 matches two categories at rating 4.6 (9.2), p3 matches two at
		// 4.2 (8.4).
		assert.Equal(t, "p1", recs[0].ItemID)
		assert.InDelta(t, 2*4.6, recs[0].Score, 1e-9)
		assert.Equal(t, "p3", recs[1].ItemID)
		assert.InDelta(t, 2*4.2, recs[1].Score, 1e-9)
	})

	t.Run("unknown mood falls back to the default bucket", func(t *testing.T) {
		recs := f.RecommendByMood(models.MoodProfile{Primary: "perplexed"}, 10)
		// relaxed bucket = Arts, Design, Education; only Lab Notes matches.
		require.Len(t, recs, 1)
		assert.Equal(t, "p2", recs[0].ItemID)
	})
}

func TestContentFilter_SimilarItems(t *testing.T) {
	f := NewContentFilter(PodcastPolicy(), testLogger())
	f.AddItems(testPodcasts())

	t.Run("unknown item yields empty result", func(t *testing.T) {
		assert.Empty(t, f.SimilarItems("nope", 3))
	})

	t.Run("shared host and categories rank first", func(t *testing.T) {
		recs := f.SimilarItems("p1", 3)
		require.NotEmpty(t, recs)
		assert.Equal(t, "p3", recs[0].ItemID)
		for _, rec := range recs {
			assert.NotEqual(t, "p1", rec.ItemID)
		}
	})
}
