package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/catalog"
)

// createMovieReq deliberately has no owner field: the owner is always
// the authenticated caller.
type createMovieReq struct {
	Title          string  `json:"title" validate:"required"`
	PublishingYear int     `json:"publishingYear" validate:"required"`
	Poster         *string `json:"poster"`
}

type updateMovieReq struct {
	Title          *string `json:"title"`
	PublishingYear *int    `json:"publishingYear"`
	Poster         *string `json:"poster"`
}

func movieID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var in createMovieReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		errorJSON(w, http.StatusBadRequest, "title and publishingYear are required")
		return
	}

	m, err := s.catalog.Create(r.Context(), userFrom(r.Context()).ID, catalog.CreateInput{
		Title:          in.Title,
		PublishingYear: in.PublishingYear,
		Poster:         in.Poster,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := 1
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	limit := catalog.DefaultPageSize
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	out, err := s.catalog.List(r.Context(), userFrom(r.Context()).ID, page, limit)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	m, err := s.catalog.Get(r.Context(), id, userFrom(r.Context()).ID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	var in updateMovieReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	m, err := s.catalog.Update(r.Context(), id, userFrom(r.Context()).ID, catalog.UpdateInput{
		Title:          in.Title,
		PublishingYear: in.PublishingYear,
		Poster:         in.Poster,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := s.catalog.Delete(r.Context(), id, userFrom(r.Context()).ID); err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Movie deleted successfully"})
}
