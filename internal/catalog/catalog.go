// Package catalog keeps a local mirror of the movie catalogue for
// interactive views. Successful writes patch the mirror in place instead of
// re-fetching, then notify subscribers so independently mounted views can
// refresh their own copies. The mirror is best-effort and eventually
// consistent; it assumes a single interactive user, not concurrent editors.
package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/cinebox/cinebox/internal/domain"
	"github.com/cinebox/cinebox/internal/repository"
)

// API is the subset of the CineBox client the catalog consumes.
type API interface {
	Movies(ctx context.Context, filter repository.Filter) []domain.Movie
	Add(ctx context.Context, input domain.MovieInput) *domain.Movie
	Update(ctx context.Context, id int64, input domain.MovieInput) *domain.Movie
	Delete(ctx context.Context, id int64) bool
}

// Catalog mirrors the server-side movie list.
type Catalog struct {
	api    API
	logger *log.Logger

	mu     sync.RWMutex
	movies []domain.Movie

	subsMu  sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New constructs an empty catalog over the given API.
func New(api API, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{
		api:    api,
		logger: logger,
		subs:   make(map[int]chan struct{}),
	}
}

// Load fetches the full movie list, replacing the mirror. The client already
// degrades failures to an empty slice, so Load never fails.
func (c *Catalog) Load(ctx context.Context) {
	movies := c.api.Movies(ctx, repository.FilterAll)
	c.mu.Lock()
	c.movies = movies
	c.mu.Unlock()
}

// Movies returns a copy of the mirrored list.
func (c *Catalog) Movies() []domain.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Add creates a movie on the server and, on success, prepends it to the
// mirror and notifies subscribers. Returns nil when the server rejects it.
func (c *Catalog) Add(ctx context.Context, input domain.MovieInput) *domain.Movie {
	movie := c.api.Add(ctx, input)
	if movie == nil {
		return nil
	}

	c.mu.Lock()
	c.movies = append([]domain.Movie{*movie}, c.movies...)
	c.mu.Unlock()

	c.broadcast()
	return movie
}

// Update replaces a movie on the server and, on success, swaps the matching
// entry in the mirror and notifies subscribers.
func (c *Catalog) Update(ctx context.Context, id int64, input domain.MovieInput) *domain.Movie {
	movie := c.api.Update(ctx, id, input)
	if movie == nil {
		return nil
	}

	c.mu.Lock()
	for i := range c.movies {
		if c.movies[i].ID == id {
			c.movies[i] = *movie
			break
		}
	}
	c.mu.Unlock()

	c.broadcast()
	return movie
}

// Remove deletes a movie on the server and, on success, filters it out of
// the mirror and notifies subscribers.
func (c *Catalog) Remove(ctx context.Context, id int64) bool {
	if !c.api.Delete(ctx, id) {
		return false
	}

	c.mu.Lock()
	kept := c.movies[:0]
	for _, m := range c.movies {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.movies = kept
	c.mu.Unlock()

	c.broadcast()
	return true
}

// Subscribe registers for change notifications. The returned channel receives
// a signal after every successful write; the cancel func unregisters it.
// Notifications are coalesced, not queued: a slow subscriber sees at least
// one signal, not one per write.
func (c *Catalog) Subscribe() (<-chan struct{}, func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch

	cancel := func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
	return ch, cancel
}

func (c *Catalog) broadcast() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
