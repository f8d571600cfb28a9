package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinebox/cinebox/internal/domain"
	"github.com/cinebox/cinebox/internal/store"
)

// MoviesRepository persists movies in Postgres.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

// New constructs a MoviesRepository backed by the provided store.
func New(st *store.Store) *MoviesRepository {
	return &MoviesRepository{pool: st.Pool()}
}

// NewWithPool allows constructing the repository directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *MoviesRepository {
	return &MoviesRepository{pool: pool}
}

const movieColumns = `
    id,
    title,
    description,
    image_url,
    rating,
    review_user,
    genre,
    year,
    created_at,
    updated_at
`

// List returns movies ordered and limited by the filter preset.
func (r *MoviesRepository) List(ctx context.Context, filter Filter) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies`, movieColumns)
	switch filter {
	case FilterPopular:
		query += fmt.Sprintf(" ORDER BY rating DESC LIMIT %d", filterLimit)
	case FilterNew:
		query += fmt.Sprintf(" ORDER BY year DESC LIMIT %d", filterLimit)
	case FilterTopRated:
		query += fmt.Sprintf(" WHERE rating >= %g ORDER BY rating DESC LIMIT %d", topRatedFloor, filterLimit)
	default:
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, input domain.MovieInput) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, description, image_url, rating, review_user, genre, year)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query,
		input.Title, input.Description, input.ImageURL, input.Rating,
		input.ReviewUser, input.Genre, input.Year)
	return scanMovie(row)
}

// Update replaces every user-supplied field and refreshes updated_at. The
// RETURNING clause doubles as the existence check: zero rows means the id is
// gone, with no window for a concurrent delete between check and mutation.
func (r *MoviesRepository) Update(ctx context.Context, id int64, input domain.MovieInput) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movies
        SET title = $2,
            description = $3,
            image_url = $4,
            rating = $5,
            review_user = $6,
            genre = $7,
            year = $8,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, id,
		input.Title, input.Description, input.ImageURL, input.Rating,
		input.ReviewUser, input.Genre, input.Year)
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// Delete removes a movie and returns its title for confirmation messaging.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) (string, error) {
	const query = `DELETE FROM movies WHERE id = $1 RETURNING title`

	var title string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return title, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.ImageURL,
		&movie.Rating,
		&movie.ReviewUser,
		&movie.Genre,
		&movie.Year,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
