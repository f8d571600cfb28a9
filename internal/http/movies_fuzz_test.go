package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func FuzzHandleCreateMovie(f *testing.F) {
	seeds := []string{
		`{"title":"Inception","description":"d","image_url":"/p.jpg","rating":8.8,"review_user":"r","genre":"Sci-Fi","year":2010}`,
		`{"rating":11}`,
		`{"title":""}`,
		`not json`,
		``,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	srv := buildTestServer(f)

	f.Fuzz(func(t *testing.T, raw string) {
		req := httptest.NewRequest(http.MethodPost, "/api/movies", bytes.NewBufferString(raw))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		// Arbitrary payloads must never produce a 5xx from a healthy store.
		if rec.Code >= 500 {
			t.Fatalf("payload %q produced status %d", raw, rec.Code)
		}
	})
}
