package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cinebox/cinebox/internal/domain"
)

// MemoryRepository keeps the catalogue in process memory so the app can run
// without a live database. Selected with STORE_DRIVER=memory; contents are
// lost on restart.
type MemoryRepository struct {
	mu     sync.RWMutex
	movies []domain.Movie
	nextID int64
}

// NewMemory constructs an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

// List returns movies ordered and limited by the filter preset.
func (r *MemoryRepository) List(_ context.Context, filter Filter) ([]domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]domain.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if filter == FilterTopRated && m.Rating < topRatedFloor {
			continue
		}
		movies = append(movies, m)
	}

	switch filter {
	case FilterPopular, FilterTopRated:
		sort.SliceStable(movies, func(i, j int) bool { return movies[i].Rating > movies[j].Rating })
	case FilterNew:
		sort.SliceStable(movies, func(i, j int) bool { return movies[i].Year > movies[j].Year })
	default:
		// Equivalent to ORDER BY created_at DESC, id DESC: ids break ties
		// between movies created within the clock's resolution.
		sort.SliceStable(movies, func(i, j int) bool {
			if !movies[i].CreatedAt.Equal(movies[j].CreatedAt) {
				return movies[i].CreatedAt.After(movies[j].CreatedAt)
			}
			return movies[i].ID > movies[j].ID
		})
		return movies, nil
	}

	if len(movies) > filterLimit {
		movies = movies[:filterLimit]
	}
	return movies, nil
}

// GetByID returns one movie or ErrNotFound.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Movie{}, ErrNotFound
}

// Create assigns an id and timestamps and stores the movie.
func (r *MemoryRepository) Create(_ context.Context, input domain.MovieInput) (domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	movie := domain.Movie{
		ID:          r.nextID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Rating:      input.Rating,
		ReviewUser:  input.ReviewUser,
		Genre:       input.Genre,
		Year:        input.Year,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.movies = append(r.movies, movie)
	return movie, nil
}

// Update replaces every user-supplied field and refreshes UpdatedAt. The lock
// is held across lookup and mutation, so there is no check-then-act window.
func (r *MemoryRepository) Update(_ context.Context, id int64, input domain.MovieInput) (domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.movies {
		if m.ID != id {
			continue
		}
		updated := domain.Movie{
			ID:          m.ID,
			Title:       input.Title,
			Description: input.Description,
			ImageURL:    input.ImageURL,
			Rating:      input.Rating,
			ReviewUser:  input.ReviewUser,
			Genre:       input.Genre,
			Year:        input.Year,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   time.Now().UTC(),
		}
		r.movies[i] = updated
		return updated, nil
	}
	return domain.Movie{}, ErrNotFound
}

// Delete removes a movie and returns its title.
func (r *MemoryRepository) Delete(_ context.Context, id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.movies {
		if m.ID != id {
			continue
		}
		r.movies = append(r.movies[:i], r.movies[i+1:]...)
		return m.Title, nil
	}
	return "", ErrNotFound
}
