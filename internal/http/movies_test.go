package httpserver

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/movies", "/api/movies"},
		{"/api/movies/42", "/api/movies/{id}"},
		{"/api/movies/42/", "/api/movies/{id}/"},
		{"/healthz", "/healthz"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
