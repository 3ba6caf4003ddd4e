package recommend

import (
	"math"

	"github.com/marberan/tastemix/pkg/models"
)

// DomainPolicy captures everything that differs between the movie, music
// and podcast engines: the mood-to-category table and the closed-form
// metadata similarity with its blend weights. One generic engine plus three
// policies replaces three near-duplicate implementations.
type DomainPolicy struct {
	Domain         models.Domain
	MoodCategories map[string][]string
	FallbackMood   string

	// Blend weights for Similarity: metadata vs TF-IDF cosine.
	MetadataWeight float64
	TextWeight     float64

	MetadataSimilarity func(a, b CatalogItem) float64
}

// MoviePolicy weighs genre overlap heaviest, then cast, then director.
func MoviePolicy() DomainPolicy {
	return DomainPolicy{
		Domain: models.DomainMovie,
		MoodCategories: map[string][]string{
			"happy":      {"Comedy", "Adventure", "Family"},
			"sad":        {"Drama", "Romance"},
			"energetic":  {"Action", "Thriller", "Adventure"},
			"relaxed":    {"Comedy", "Animation", "Documentary"},
			"romantic":   {"Romance", "Drama"},
			"thoughtful": {"Drama", "Mystery", "Sci-Fi"},
			"focused":    {"Documentary", "Biography", "History"},
		},
		FallbackMood:       "thoughtful",
		MetadataWeight:     0.7,
		TextWeight:         0.3,
		MetadataSimilarity: movieMetadataSimilarity,
	}
}

// MusicPolicy uses genre, mood adjacency, energy proximity and artist
// identity instead of cast/director.
func MusicPolicy() DomainPolicy {
	return DomainPolicy{
		Domain: models.DomainMusic,
		MoodCategories: map[string][]string{
			"happy":      {"happy", "energetic"},
			"sad":        {"sad", "thoughtful"},
			"energetic":  {"energetic", "happy"},
			"relaxed":    {"relaxed", "romantic"},
			"romantic":   {"romantic", "relaxed"},
			"thoughtful": {"thoughtful", "sad"},
			"focused":    {"relaxed", "thoughtful"},
		},
		FallbackMood:       "relaxed",
		MetadataWeight:     0.7,
		TextWeight:         0.3,
		MetadataSimilarity: musicMetadataSimilarity,
	}
}

// PodcastPolicy leans almost entirely on category overlap with a host
// bonus.
func PodcastPolicy() DomainPolicy {
	return DomainPolicy{
		Domain: models.DomainPodcast,
		MoodCategories: map[string][]string{
			"happy":      {"Comedy", "Entertainment", "Society"},
			"sad":        {"Story", "Personal", "Documentary"},
			"energetic":  {"Interview", "Business", "News"},
			"relaxed":    {"Arts", "Design", "Education"},
			"focused":    {"Science", "Education", "Technology"},
			"romantic":   {"Story", "Arts", "Personal"},
			"thoughtful": {"Psychology", "Science", "Society"},
		},
		FallbackMood:       "relaxed",
		MetadataWeight:     0.7,
		TextWeight:         0.3,
		MetadataSimilarity: podcastMetadataSimilarity,
	}
}

// PolicyFor returns the policy for a known domain.
func PolicyFor(domain models.Domain) DomainPolicy {
	switch domain {
	case models.DomainMusic:
		return MusicPolicy()
	case models.DomainPodcast:
		return PodcastPolicy()
	default:
		return MoviePolicy()
	}
}

func movieMetadataSimilarity(a, b CatalogItem) float64 {
	ma, aok := asMovie(a)
	mb, bok := asMovie(b)
	if !aok || !bok {
		return tagOverlap(a.ItemTags(), b.ItemTags())
	}

	genreSim := overlapRatio(ma.Genres, mb.Genres)
	castSim := overlapRatio(ma.Cast, mb.Cast)
	directorSim := 0.0
	if ma.Director != "" && ma.Director == mb.Director {
		directorSim = 1.0
	}
	return genreSim*0.5 + castSim*0.3 + directorSim*0.2
}

func musicMetadataSimilarity(a, b CatalogItem) float64 {
	sa, aok := asSong(a)
	sb, bok := asSong(b)
	if !aok || !bok {
		return tagOverlap(a.ItemTags(), b.ItemTags())
	}

	genreSim := jaccard(sa.Genres, sb.Genres)

	moodSim := 0.0
	related := MusicPolicy().MoodCategories[sa.Mood]
	if len(related) == 0 {
		related = []string{sa.Mood}
	}
	if containsString(related, sb.Mood) {
		moodSim = 1.0
	}

	energySim := 1.0 - math.Abs(sa.Energy-sb.Energy)/100.0

	artistSim := 0.0
	if sa.Artist == sb.Artist {
		artistSim = 1.0
	}

	return genreSim*0.35 + moodSim*0.3 + energySim*0.2 + artistSim*0.15
}

func podcastMetadataSimilarity(a, b CatalogItem) float64 {
	pa, aok := asPodcast(a)
	pb, bok := asPodcast(b)
	if !aok || !bok {
		return tagOverlap(a.ItemTags(), b.ItemTags())
	}

	categorySim := overlapRatio(pa.Categories, pb.Categories)

	hostBonus := 0.0
	if pa.Host != "" && pa.Host == pb.Host {
		hostBonus = 0.3
	}

	ratingSim := math.Max(0, 1.0-math.Abs(pa.Rating-pb.Rating)/5.0) * 0.2

	return math.Min(categorySim*0.7+hostBonus+ratingSim, 1.0)
}

func asMovie(item CatalogItem) (models.Movie, bool) {
	switch v := item.(type) {
	case models.Movie:
		return v, true
	case *models.Movie:
		return *v, true
	}
	return models.Movie{}, false
}

func asSong(item CatalogItem) (models.Song, bool) {
	switch v := item.(type) {
	case models.Song:
		return v, true
	case *models.Song:
		return *v, true
	}
	return models.Song{}, false
}

func asPodcast(item CatalogItem) (models.Podcast, bool) {
	switch v := item.(type) {
	case models.Podcast:
		return v, true
	case *models.Podcast:
		return *v, true
	}
	return models.Podcast{}, false
}

// overlapRatio is intersection over the larger set, the reference metric
// for genre and cast overlap.
func overlapRatio(a, b []string) float64 {
	common := intersectionSize(a, b)
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom == 0 {
		denom = 1
	}
	return float64(common) / float64(denom)
}

// jaccard is intersection over union.
func jaccard(a, b []string) float64 {
	common := intersectionSize(a, b)
	union := len(a) + len(b) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

func intersectionSize(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}

func tagOverlap(a, b []string) float64 {
	return overlapRatio(a, b)
}
