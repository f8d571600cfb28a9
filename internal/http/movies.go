package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cinebox/cinebox/internal/domain"
	"github.com/cinebox/cinebox/internal/repository"
)

// Large enough for data-URI posters.
const maxRequestBody = 8 << 20

// envelope is the uniform JSON wrapper every handler responds with.
type envelope struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
	Details  string      `json:"details,omitempty"`
	Required []string    `json:"required,omitempty"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filter := repository.Filter(r.URL.Query().Get("filter"))

	movies, err := s.repo.List(r.Context(), filter)
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondPersistenceError(w, "Failed to fetch movies", err)
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{Success: true, Data: movies})
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}

	movie, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondNotFound(w)
			return
		}
		s.logger.Printf("get movie %d error: %v", id, err)
		s.respondPersistenceError(w, "Failed to fetch movie", err)
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{Success: true, Data: movie})
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var input domain.MovieInput
	if err := decodeJSONBody(w, r, &input); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if verr := domain.ValidateMovieInput(input); verr != nil {
		s.respondValidationError(w, verr)
		return
	}

	movie, err := s.repo.Create(r.Context(), input)
	if err != nil {
		s.logger.Printf("create movie error: %v", err)
		s.respondPersistenceError(w, "Failed to add movie", err)
		return
	}

	s.logger.Printf("movie %q added with id %d", movie.Title, movie.ID)
	s.respondJSON(w, http.StatusCreated, envelope{
		Success: true,
		Data:    movie,
		Message: "Movie added successfully",
	})
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}

	var input domain.MovieInput
	if err := decodeJSONBody(w, r, &input); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if verr := domain.ValidateMovieInput(input); verr != nil {
		s.respondValidationError(w, verr)
		return
	}

	movie, err := s.repo.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondNotFound(w)
			return
		}
		s.logger.Printf("update movie %d error: %v", id, err)
		s.respondPersistenceError(w, "Failed to update movie", err)
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    movie,
		Message: "Movie updated successfully",
	})
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}

	title, err := s.repo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondNotFound(w)
			return
		}
		s.logger.Printf("delete movie %d error: %v", id, err)
		s.respondPersistenceError(w, "Failed to delete movie", err)
		return
	}

	s.logger.Printf("movie %q deleted", title)
	s.respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: fmt.Sprintf("Movie %q deleted successfully", title),
	})
}

// connectionReport is the diagnostic payload for /api/test-connection.
type connectionReport struct {
	Driver    string `json:"driver"`
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty"`
	Database  string `json:"database,omitempty"`
	User      string `json:"user,omitempty"`
	Password  string `json:"password,omitempty"`
	Connected bool   `json:"connected"`
	PoolTotal int32  `json:"pool_total,omitempty"`
	PoolIdle  int32  `json:"pool_idle,omitempty"`
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	report := connectionReport{Driver: s.cfg.StoreDriver}

	if s.store == nil {
		report.Connected = true
		s.respondJSON(w, http.StatusOK, envelope{
			Success: true,
			Data:    report,
			Message: "In-memory store active; no database connection required",
		})
		return
	}

	report.Host = s.cfg.DBHost
	report.Port = s.cfg.DBPort
	report.Database = s.cfg.DBName
	report.User = s.cfg.DBUser
	report.Password = "(empty)"
	if s.cfg.DBPassword != "" {
		report.Password = "***"
	}

	if err := s.store.HealthCheck(r.Context()); err != nil {
		s.respondJSON(w, http.StatusInternalServerError, envelope{
			Success: false,
			Data:    report,
			Error:   "Database connection failed",
			Details: err.Error(),
		})
		return
	}

	report.Connected = true
	if stats := s.store.Stats(); stats != nil {
		report.PoolTotal = stats.TotalConns()
		report.PoolIdle = stats.IdleConns()
	}
	s.respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    report,
		Message: "Database connected successfully",
	})
}

// movieID parses the {id} route parameter, responding with a validation
// error on non-numeric input.
func (s *Server) movieID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.respondJSON(w, http.StatusBadRequest, envelope{
			Success: false,
			Error:   "Invalid movie id",
		})
		return 0, false
	}
	return id, true
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondNotFound(w http.ResponseWriter) {
	s.respondJSON(w, http.StatusNotFound, envelope{
		Success: false,
		Error:   "Movie not found",
	})
}

func (s *Server) respondPersistenceError(w http.ResponseWriter, message string, err error) {
	s.respondJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Error:   message,
		Details: err.Error(),
	})
}

func (s *Server) respondValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	resp := envelope{
		Success: false,
		Error:   verr.Error(),
	}
	if len(verr.Missing) > 0 {
		resp.Required = domain.RequiredFields()
	}
	s.respondJSON(w, http.StatusBadRequest, resp)
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "Malformed JSON payload"})
	case errors.As(err, &typeError):
		s.respondJSON(w, http.StatusBadRequest, envelope{Success: false, Error: fmt.Sprintf("Invalid value for field %s", typeError.Field)})
	case errors.Is(err, io.EOF):
		s.respondJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "Request body cannot be empty"})
	default:
		s.respondJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "Unable to parse request body"})
	}
}
