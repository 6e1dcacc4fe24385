package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type credentialsReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// credentialsMessage turns the first validation failure into a
// field-level message for the client.
func credentialsMessage(err error) string {
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, e := range ve {
			switch e.Field() {
			case "Email":
				return "Please provide a valid email address"
			case "Password":
				if e.Tag() == "min" {
					return "Password must be at least 6 characters long"
				}
				return "Password is required"
			}
		}
	}
	return "Invalid input data"
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		errorJSON(w, http.StatusBadRequest, credentialsMessage(err))
		return
	}

	u, tok, err := s.auth.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": u, "token": tok})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.validate.Struct(in); err != nil {
		errorJSON(w, http.StatusBadRequest, credentialsMessage(err))
		return
	}

	u, tok, err := s.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u, "token": tok})
}
