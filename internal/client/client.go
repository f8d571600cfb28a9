// Package client is the Go consumer of the CineBox API. Failures are logged
// and converted to empty results so callers degrade to an empty view instead
// of crashing; a UI built on top of this never sees a transport error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinebox/cinebox/internal/domain"
	"github.com/cinebox/cinebox/internal/repository"
)

// Client talks to a CineBox server over HTTP.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	logger  *log.Logger
}

// New constructs a Client for the given base URL.
func New(baseURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Client{
		baseURL: parsed,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

// Movies fetches the movie list, optionally narrowed by a filter preset.
// Returns an empty slice on any failure.
func (c *Client) Movies(ctx context.Context, filter repository.Filter) []domain.Movie {
	path := "/api/movies"
	if filter != repository.FilterAll {
		path += "?filter=" + url.QueryEscape(string(filter))
	}

	var movies []domain.Movie
	if err := c.do(ctx, http.MethodGet, path, nil, &movies); err != nil {
		c.logger.Printf("client: fetch movies: %v", err)
		return []domain.Movie{}
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies
}

// Movie fetches a single movie by id. Returns nil on any failure.
func (c *Client) Movie(ctx context.Context, id int64) *domain.Movie {
	var movie domain.Movie
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/movies/%d", id), nil, &movie); err != nil {
		c.logger.Printf("client: fetch movie %d: %v", id, err)
		return nil
	}
	return &movie
}

// Add creates a movie and returns the stored record, or nil on any failure.
func (c *Client) Add(ctx context.Context, input domain.MovieInput) *domain.Movie {
	var movie domain.Movie
	if err := c.do(ctx, http.MethodPost, "/api/movies", input, &movie); err != nil {
		c.logger.Printf("client: add movie: %v", err)
		return nil
	}
	return &movie
}

// Update replaces a movie and returns the stored record, or nil on any failure.
func (c *Client) Update(ctx context.Context, id int64, input domain.MovieInput) *domain.Movie {
	var movie domain.Movie
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/movies/%d", id), input, &movie); err != nil {
		c.logger.Printf("client: update movie %d: %v", id, err)
		return nil
	}
	return &movie
}

// Delete removes a movie, reporting only whether the server confirmed it.
func (c *Client) Delete(ctx context.Context, id int64) bool {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/movies/%d", id), nil, nil); err != nil {
		c.logger.Printf("client: delete movie %d: %v", id, err)
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	rel, err := url.Parse(path)
	if err != nil {
		return err
	}
	endpoint := c.baseURL.ResolveReference(rel)

	var payload *bytes.Buffer
	if body != nil {
		payload = &bytes.Buffer{}
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var req *http.Request
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint.String(), payload)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	}
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("server: %s", env.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if out != nil {
		if len(env.Data) == 0 {
			return fmt.Errorf("response missing data")
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
