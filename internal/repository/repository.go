package repository

import (
	"context"
	"errors"

	"github.com/cinebox/cinebox/internal/domain"
)

// ErrNotFound indicates the requested movie does not exist.
var ErrNotFound = errors.New("repository: not found")

// Filter selects a preset sort order and row limit for listing.
type Filter string

const (
	FilterAll      Filter = ""
	FilterPopular  Filter = "popular"
	FilterNew      Filter = "new"
	FilterTopRated Filter = "top-rated"
)

// filterLimit caps the curated listings (popular, new, top-rated).
const filterLimit = 6

// topRatedFloor is the minimum rating for the top-rated listing.
const topRatedFloor = 8.5

// MovieRepository is the persistence contract for the movie catalogue. Two
// implementations exist: one backed by Postgres and one holding everything in
// process memory for development without a live database.
type MovieRepository interface {
	// List returns movies ordered and limited by the filter preset. Unknown
	// filters behave like FilterAll.
	List(ctx context.Context, filter Filter) ([]domain.Movie, error)
	// GetByID returns one movie or ErrNotFound.
	GetByID(ctx context.Context, id int64) (domain.Movie, error)
	// Create inserts a movie and returns the stored row with its generated
	// id and timestamps.
	Create(ctx context.Context, input domain.MovieInput) (domain.Movie, error)
	// Update replaces every user-supplied field and refreshes updated_at.
	Update(ctx context.Context, id int64, input domain.MovieInput) (domain.Movie, error)
	// Delete removes a movie and returns its title for confirmation messaging.
	Delete(ctx context.Context, id int64) (string, error)
}
