package client

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinebox/cinebox/internal/config"
	"github.com/cinebox/cinebox/internal/domain"
	httpserver "github.com/cinebox/cinebox/internal/http"
	"github.com/cinebox/cinebox/internal/repository"
)

func newTestClient(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()

	cfg := config.Config{
		Port:             "0",
		StoreDriver:      config.DriverMemory,
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 15,
		IdleTimeoutSecs:  60,
	}
	logger := log.New(io.Discard, "", 0)
	srv := httpserver.New(cfg, nil, repository.NewMemory(), logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL, 2*time.Second, logger)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, ts
}

func sampleInput(title string, rating float64) domain.MovieInput {
	return domain.MovieInput{
		Title:       title,
		Description: "A test movie",
		ImageURL:    "/posters/test.jpg",
		Rating:      rating,
		ReviewUser:  "Reviewer",
		Genre:       "Drama",
		Year:        2015,
	}
}

func TestClient_CRUDContract(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	added := c.Add(ctx, sampleInput("First", 7.5))
	if added == nil {
		t.Fatalf("Add returned nil for valid input")
	}
	if added.ID <= 0 {
		t.Fatalf("Add returned id %d, want positive", added.ID)
	}

	movies := c.Movies(ctx, repository.FilterAll)
	if len(movies) != 1 || movies[0].Title != "First" {
		t.Fatalf("Movies = %+v, want one movie named First", movies)
	}

	got := c.Movie(ctx, added.ID)
	if got == nil || got.Title != "First" {
		t.Fatalf("Movie(%d) = %+v", added.ID, got)
	}

	updated := c.Update(ctx, added.ID, sampleInput("Renamed", 9.0))
	if updated == nil || updated.Title != "Renamed" || updated.Rating != 9.0 {
		t.Fatalf("Update = %+v", updated)
	}

	if !c.Delete(ctx, added.ID) {
		t.Fatalf("Delete returned false for existing movie")
	}
	if c.Movie(ctx, added.ID) != nil {
		t.Fatalf("Movie after delete should be nil")
	}
}

func TestClient_SwallowsServerRejections(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	bad := sampleInput("Bad", 11)
	if movie := c.Add(ctx, bad); movie != nil {
		t.Fatalf("Add with invalid rating = %+v, want nil", movie)
	}

	if movie := c.Update(ctx, 999, sampleInput("Ghost", 5)); movie != nil {
		t.Fatalf("Update of missing id = %+v, want nil", movie)
	}

	if c.Delete(ctx, 999) {
		t.Fatalf("Delete of missing id returned true")
	}

	if movie := c.Movie(ctx, 999); movie != nil {
		t.Fatalf("Movie of missing id = %+v, want nil", movie)
	}
}

func TestClient_DegradesWhenServerUnreachable(t *testing.T) {
	c, ts := newTestClient(t)
	ts.Close()
	ctx := context.Background()

	movies := c.Movies(ctx, repository.FilterAll)
	if movies == nil || len(movies) != 0 {
		t.Fatalf("Movies against dead server = %+v, want empty slice", movies)
	}
	if c.Add(ctx, sampleInput("Lost", 7)) != nil {
		t.Fatalf("Add against dead server should return nil")
	}
	if c.Delete(ctx, 1) {
		t.Fatalf("Delete against dead server should return false")
	}
}

func TestClient_FilterQuery(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	ratings := []float64{9.5, 8.7, 8.6, 9.1, 7.0, 6.5, 8.9, 5.0}
	for i, rating := range ratings {
		in := sampleInput("Movie", rating)
		in.Year = 1990 + i
		if c.Add(ctx, in) == nil {
			t.Fatalf("seed add failed")
		}
	}

	top := c.Movies(ctx, repository.FilterTopRated)
	if len(top) != 5 {
		t.Fatalf("top-rated = %d movies, want 5", len(top))
	}
	for _, m := range top {
		if m.Rating < 8.5 {
			t.Fatalf("top-rated contains rating %v", m.Rating)
		}
	}

	popular := c.Movies(ctx, repository.FilterPopular)
	if len(popular) != 6 {
		t.Fatalf("popular = %d movies, want 6", len(popular))
	}
}
