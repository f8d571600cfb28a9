package domain

import "time"

// Genres is the closed set of genres a movie may belong to.
var Genres = []string{
	"Action", "Comedy", "Drama", "Horror", "Romance",
	"Sci-Fi", "Thriller", "Animation", "Documentary",
}

// ValidGenre reports whether genre is a member of the Genres set.
func ValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Movie represents the canonical movie entity in the database/service.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	ReviewUser  string    `json:"review_user"`
	Genre       string    `json:"genre"`
	Year        int       `json:"year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovieInput bundles the user-supplied fields for create and update. The id
// and timestamps are always assigned by the persistence layer.
type MovieInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
	ReviewUser  string  `json:"review_user"`
	Genre       string  `json:"genre"`
	Year        int     `json:"year"`
}
