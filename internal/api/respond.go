package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/shared"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// serviceError maps typed service failures onto HTTP statuses. Store
// faults stay generic; the message never hints at what went wrong
// inside.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *shared.ValidationError
	switch {
	case errors.As(err, &ve):
		errorJSON(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, shared.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "Movie not found")
	case errors.Is(err, shared.ErrEmailTaken):
		errorJSON(w, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, shared.ErrInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
