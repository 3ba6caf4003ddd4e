// Package dataset holds the embedded seed catalogs and rating history the
// server loads at startup. The catalogs are fixed in-memory data; no file
// or network format is owned by the engine.
package dataset

import (
	"time"

	"github.com/marberan/tastemix/pkg/models"
)

func ts(offset int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
}

// Movies is a small MovieLens-style catalog.
func Movies() []models.Movie {
	return []models.Movie{
		{
			ID: "tt0111161", Title: "The Shawshank Redemption",
			Genres:   []string{"Drama", "Crime"},
			Cast:     []string{"Tim Robbins", "Morgan Freeman"},
			Director: "Frank Darabont", Language: "en",
			Overview:   "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			Rating:     9.3,
			PosterPath: "/shawshank.jpg",
		},
		{
			ID: "tt0068646", Title: "The Godfather",
			Genres:   []string{"Crime", "Drama"},
			Cast:     []string{"Marlon Brando", "Al Pacino"},
			Director: "Francis Ford Coppola", Language: "en",
			Overview:   "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
			Rating:     9.2,
			PosterPath: "/godfather.jpg",
		},
		{
			ID: "tt1375666", Title: "Inception",
			Genres:   []string{"Action", "Sci-Fi", "Thriller"},
			Cast:     []string{"Leonardo DiCaprio", "Marion Cotillard"},
			Director: "Christopher Nolan", Language: "en",
			Overview:   "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea.",
			Rating:     8.8,
			PosterPath: "/inception.jpg",
		},
		{
			ID: "tt0109830", Title: "Forrest Gump",
			Genres:   []string{"Drama", "Romance"},
			Cast:     []string{"Tom Hanks", "Sally Field"},
			Director: "Robert Zemeckis", Language: "en",
			Overview:   "The presidencies of Kennedy and Johnson unfold through the perspective of an Alabama man with an IQ of 75.",
			Rating:     8.8,
			PosterPath: "/forrest.jpg",
		},
		{
			ID: "tt0816692", Title: "Interstellar",
			Genres:   []string{"Adventure", "Drama", "Sci-Fi"},
			Cast:     []string{"Matthew McConaughey", "Anne Hathaway"},
			Director: "Christopher Nolan", Language: "en",
			Overview:   "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
			Rating:     8.6,
			PosterPath: "/interstellar.jpg",
		},
	}
}

// MovieRatings is the seed interaction history for the movie catalog.
func MovieRatings() []models.Rating {
	return []models.Rating{
		{UserID: "user1", ItemID: "tt0111161", Rating: 5, Timestamp: ts(0)},
		{UserID: "user1", ItemID: "tt0068646", Rating: 4.5, Timestamp: ts(1)},
		{UserID: "user1", ItemID: "tt1375666", Rating: 4, Timestamp: ts(2)},
		{UserID: "user2", ItemID: "tt0111161", Rating: 5, Timestamp: ts(10)},
		{UserID: "user2", ItemID: "tt0109830", Rating: 5, Timestamp: ts(11)},
		{UserID: "user2", ItemID: "tt0816692", Rating: 3.5, Timestamp: ts(12)},
		{UserID: "user3", ItemID: "tt1375666", Rating: 5, Timestamp: ts(20)},
		{UserID: "user3", ItemID: "tt0816692", Rating: 4.5, Timestamp: ts(21)},
		{UserID: "user3", ItemID: "tt0068646", Rating: 4, Timestamp: ts(22)},
	}
}

// Songs carries the mood/energy labels the music content filter depends on.
func Songs() []models.Song {
	return []models.Song{
		{ID: "sg01", Title: "Golden Hour Drive", Artist: "Neon Harbor", Album: "Coastlines",
			Genres: []string{"Pop", "Indie"}, Mood: "happy", Energy: 78, Rating: 4.5,
			Description: "Bright synth pop about rolling the windows down on a summer evening."},
		{ID: "sg02", Title: "Last Train North", Artist: "Mara Quinn", Album: "Platform Nine",
			Genres: []string{"Folk", "Acoustic"}, Mood: "sad", Energy: 25, Rating: 4.7,
			Description: "A sparse acoustic ballad about leaving a city and someone behind."},
		{ID: "sg03", Title: "Voltage", Artist: "Citadel Run", Album: "Overdrive",
			Genres: []string{"Electronic", "Dance"}, Mood: "energetic", Energy: 95, Rating: 4.2,
			Description: "Relentless four-on-the-floor built for the last hour of a long run."},
		{ID: "sg04", Title: "Porch Light", Artist: "Mara Quinn", Album: "Platform Nine",
			Genres: []string{"Folk", "Country"}, Mood: "relaxed", Energy: 35, Rating: 4.4,
			Description: "Warm fingerpicked guitar and stories about small towns after dark."},
		{ID: "sg05", Title: "Slow Orbit", Artist: "Velour Sky", Album: "Apogee",
			Genres: []string{"Ambient", "Electronic"}, Mood: "thoughtful", Energy: 20, Rating: 4.6,
			Description: "Drifting pads and distant piano for late night thinking."},
		{ID: "sg06", Title: "Two Candles", Artist: "June Alvarez", Album: "Tableside",
			Genres: []string{"Jazz", "Soul"}, Mood: "romantic", Energy: 40, Rating: 4.8,
			Description: "Smoky vocal jazz recorded live in a basement club."},
		{ID: "sg07", Title: "Concrete Bloom", Artist: "Citadel Run", Album: "Overdrive",
			Genres: []string{"Electronic", "House"}, Mood: "happy", Energy: 85, Rating: 4.0,
			Description: "Euphoric piano house with a chopped vocal hook."},
		{ID: "sg08", Title: "Winter Letters", Artist: "Velour Sky", Album: "Apogee",
			Genres: []string{"Ambient", "Classical"}, Mood: "sad", Energy: 15, Rating: 4.3,
			Description: "Strings and tape hiss, written for grey mornings."},
		{ID: "sg09", Title: "Meridian", Artist: "Neon Harbor", Album: "Coastlines",
			Genres: []string{"Indie", "Rock"}, Mood: "energetic", Energy: 80, Rating: 4.1,
			Description: "Driving guitars and a shouted chorus about starting over."},
		{ID: "sg10", Title: "Harbor Lights", Artist: "June Alvarez", Album: "Tableside",
			Genres: []string{"Jazz", "Lounge"}, Mood: "relaxed", Energy: 30, Rating: 4.5,
			Description: "Brushed drums and upright bass for the end of the evening."},
	}
}

// SongRatings seeds the music collaborative filter. Eleven ratings, enough
// to warm the factorization path out of the box.
func SongRatings() []models.Rating {
	return []models.Rating{
		{UserID: "user1", ItemID: "sg01", Rating: 5, Timestamp: ts(30)},
		{UserID: "user1", ItemID: "sg07", Rating: 4.5, Timestamp: ts(31)},
		{UserID: "user1", ItemID: "sg09", Rating: 4, Timestamp: ts(32)},
		{UserID: "user2", ItemID: "sg02", Rating: 5, Timestamp: ts(40)},
		{UserID: "user2", ItemID: "sg08", Rating: 4.5, Timestamp: ts(41)},
		{UserID: "user2", ItemID: "sg05", Rating: 4, Timestamp: ts(42)},
		{UserID: "user3", ItemID: "sg06", Rating: 5, Timestamp: ts(50)},
		{UserID: "user3", ItemID: "sg10", Rating: 4.5, Timestamp: ts(51)},
		{UserID: "user3", ItemID: "sg04", Rating: 4.5, Timestamp: ts(52)},
		{UserID: "user3", ItemID: "sg02", Rating: 3.5, Timestamp: ts(53)},
		{UserID: "user1", ItemID: "sg03", Rating: 4.5, Timestamp: ts(54)},
	}
}

func Podcasts() []models.Podcast {
	return []models.Podcast{
		{ID: "pc01", Title: "The Long Form", Host: "Dana Okafor",
			Categories: []string{"Interview", "Society"}, Language: "en", Rating: 4.7,
			Description: "Two-hour conversations with people who build things."},
		{ID: "pc02", Title: "Night Frequencies", Host: "Ana Reeve",
			Categories: []string{"Story", "Personal"}, Language: "en", Rating: 4.6,
			Description: "Intimate first-person stories told after dark."},
		{ID: "pc03", Title: "Lab Notes", Host: "Priya Natarajan",
			Categories: []string{"Science", "Education"}, Language: "en", Rating: 4.8,
			Description: "Researchers explain what they actually do all day."},
		{ID: "pc04", Title: "The Archive Room", Host: "Ana Reeve",
			Categories: []string{"Documentary", "Story"}, Language: "en", Rating: 4.3,
			Description: "Forgotten events reconstructed from primary sources."},
		{ID: "pc05", Title: "Punchline Radio", Host: "Milo Frank",
			Categories: []string{"Comedy", "Entertainment"}, Language: "en", Rating: 4.1,
			Description: "Stand-up comedians dissect their worst sets."},
		{ID: "pc06", Title: "Ledger Lines", Host: "Sam Ito",
			Categories: []string{"Business", "News"}, Language: "en", Rating: 4.2,
			Description: "Daily markets briefing in fifteen minutes."},
		{ID: "pc07", Title: "Drawing Board", Host: "Lena Krauss",
			Categories: []string{"Design", "Arts"}, Language: "en", Rating: 4.4,
			Description: "Designers walk through one project from brief to ship."},
		{ID: "pc08", Title: "Mind the Gap", Host: "Priya Natarajan",
			Categories: []string{"Psychology", "Science"}, Language: "en", Rating: 4.5,
			Description: "What the research actually says about how we think."},
	}
}

func PodcastRatings() []models.Rating {
	return []models.Rating{
		{UserID: "user1", ItemID: "pc01", Rating: 5, Timestamp: ts(60)},
		{UserID: "user1", ItemID: "pc03", Rating: 4.5, Timestamp: ts(61)},
		{UserID: "user2", ItemID: "pc02", Rating: 5, Timestamp: ts(70)},
		{UserID: "user2", ItemID: "pc04", Rating: 4.5, Timestamp: ts(71)},
		{UserID: "user2", ItemID: "pc08", Rating: 4, Timestamp: ts(72)},
		{UserID: "user3", ItemID: "pc05", Rating: 4, Timestamp: ts(80)},
		{UserID: "user3", ItemID: "pc06", Rating: 3.5, Timestamp: ts(81)},
		{UserID: "user3", ItemID: "pc01", Rating: 4.5, Timestamp: ts(82)},
	}
}
