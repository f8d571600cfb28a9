package repository

import (
	"context"
	"fmt"
	"testing"
)

func TestMemoryRepository_CreateGetRoundTrip(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	input := movieInput("Inception", 8.8, 2010)
	created, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("first id = %d, want 1", created.ID)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != created {
		t.Fatalf("round trip mismatch: %+v != %+v", got, created)
	}

	if _, err := repo.GetByID(ctx, 42); err != ErrNotFound {
		t.Fatalf("GetByID(missing) = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepository_UpdateDelete(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	created, err := repo.Create(ctx, movieInput("Original", 7.0, 2000))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, movieInput("Renamed", 9.0, 2001))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update wrong: %+v", updated)
	}

	if _, err := repo.Update(ctx, 42, movieInput("x", 5, 2000)); err != ErrNotFound {
		t.Fatalf("Update(missing) = %v, want ErrNotFound", err)
	}

	title, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if title != "Renamed" {
		t.Fatalf("deleted title = %q, want Renamed", title)
	}
	if _, err := repo.GetByID(ctx, created.ID); err != ErrNotFound {
		t.Fatalf("GetByID after delete = %v, want ErrNotFound", err)
	}
	if _, err := repo.Delete(ctx, created.ID); err != ErrNotFound {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepository_ListFilters(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	ratings := []float64{9.5, 8.7, 8.6, 9.1, 7.0, 6.5, 8.9, 5.0}
	for i, rating := range ratings {
		if _, err := repo.Create(ctx, movieInput(fmt.Sprintf("Movie %d", i), rating, 1990+i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	top, err := repo.List(ctx, FilterTopRated)
	if err != nil {
		t.Fatalf("List(top-rated): %v", err)
	}
	if len(top) != 5 {
		t.Fatalf("List(top-rated) = %d, want 5", len(top))
	}
	for i, m := range top {
		if m.Rating < 8.5 {
			t.Fatalf("top-rated contains rating %v below 8.5", m.Rating)
		}
		if i > 0 && top[i-1].Rating < m.Rating {
			t.Fatalf("top-rated not sorted descending")
		}
	}

	popular, err := repo.List(ctx, FilterPopular)
	if err != nil {
		t.Fatalf("List(popular): %v", err)
	}
	if len(popular) != 6 {
		t.Fatalf("List(popular) = %d, want 6", len(popular))
	}
	if popular[0].Rating != 9.5 {
		t.Fatalf("popular[0].Rating = %v, want 9.5", popular[0].Rating)
	}

	newest, err := repo.List(ctx, FilterNew)
	if err != nil {
		t.Fatalf("List(new): %v", err)
	}
	if len(newest) != 6 {
		t.Fatalf("List(new) = %d, want 6", len(newest))
	}
	if newest[0].Year != 1997 {
		t.Fatalf("newest[0].Year = %d, want 1997", newest[0].Year)
	}

	all, err := repo.List(ctx, Filter("bogus"))
	if err != nil {
		t.Fatalf("List(bogus): %v", err)
	}
	if len(all) != len(ratings) {
		t.Fatalf("List(bogus) = %d, want %d", len(all), len(ratings))
	}
}

func TestMemoryRepository_DefaultListOrderDeterministic(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	// Back-to-back creates can land on the same clock tick, so the default
	// listing must fall back to id to keep newest-first stable.
	const n = 10
	for i := 0; i < n; i++ {
		if _, err := repo.Create(ctx, movieInput(fmt.Sprintf("Movie %d", i), 7.0, 2000+i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	for run := 0; run < 5; run++ {
		movies, err := repo.List(ctx, FilterAll)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(movies) != n {
			t.Fatalf("List = %d movies, want %d", len(movies), n)
		}
		for i, m := range movies {
			if want := int64(n - i); m.ID != want {
				t.Fatalf("movies[%d].ID = %d, want %d", i, m.ID, want)
			}
		}
	}
}
