package models

import "strings"

// Domain identifies one of the three content catalogs served by the engine.
type Domain string

const (
	DomainMovie   Domain = "movie"
	DomainMusic   Domain = "music"
	DomainPodcast Domain = "podcast"
)

// ParseDomain maps a request string to a known domain.
func ParseDomain(s string) (Domain, bool) {
	switch Domain(strings.ToLower(strings.TrimSpace(s))) {
	case DomainMovie:
		return DomainMovie, true
	case DomainMusic:
		return DomainMusic, true
	case DomainPodcast:
		return DomainPodcast, true
	}
	return "", false
}

// Movie is an immutable catalog entry. Rating is an external quality score
// on a 0-10 scale; Quality normalizes it to 0-5.
type Movie struct {
	ID         string   `json:"id" validate:"required"`
	Title      string   `json:"title" validate:"required"`
	Genres     []string `json:"genres" validate:"required,min=1"`
	Cast       []string `json:"cast"`
	Director   string   `json:"director"`
	Language   string   `json:"language"`
	Overview   string   `json:"overview"`
	Rating     float64  `json:"rating" validate:"min=0,max=10"`
	PosterPath string   `json:"poster_path,omitempty"`
}

func (m Movie) ItemID() string     { return m.ID }
func (m Movie) ItemTitle() string  { return m.Title }
func (m Movie) ItemTags() []string { return m.Genres }
func (m Movie) ItemText() string {
	parts := []string{strings.Join(m.Genres, " "), m.Overview, strings.Join(m.Cast, " "), m.Director}
	return strings.Join(parts, " ")
}
func (m Movie) Quality() float64 { return m.Rating / 2.0 }

// Song carries a mood label and a 0-100 energy scalar in addition to the
// usual categorical attributes. Rating is already on a 0-5 scale.
type Song struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Artist      string   `json:"artist" validate:"required"`
	Album       string   `json:"album"`
	Genres      []string `json:"genres" validate:"required,min=1"`
	Mood        string   `json:"mood"`
	Energy      float64  `json:"energy" validate:"min=0,max=100"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating" validate:"min=0,max=5"`
}

func (s Song) ItemID() string    { return s.ID }
func (s Song) ItemTitle() string { return s.Title }
func (s Song) ItemTags() []string {
	tags := make([]string, 0, len(s.Genres)+1)
	tags = append(tags, s.Genres...)
	if s.Mood != "" {
		tags = append(tags, s.Mood)
	}
	return tags
}
func (s Song) ItemText() string {
	parts := []string{strings.Join(s.Genres, " "), s.Mood, s.Description, s.Artist, s.Album}
	return strings.Join(parts, " ")
}
func (s Song) Quality() float64 { return s.Rating }

// Podcast rating is on a 0-5 scale.
type Podcast struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Host        string   `json:"host"`
	Categories  []string `json:"categories" validate:"required,min=1"`
	Language    string   `json:"language"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating" validate:"min=0,max=5"`
}

func (p Podcast) ItemID() string     { return p.ID }
func (p Podcast) ItemTitle() string  { return p.Title }
func (p Podcast) ItemTags() []string { return p.Categories }
func (p Podcast) ItemText() string {
	parts := []string{strings.Join(p.Categories, " "), p.Description, p.Host}
	return strings.Join(parts, " ")
}
func (p Podcast) Quality() float64 { return p.Rating }
