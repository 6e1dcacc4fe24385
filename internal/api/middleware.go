package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/models"
)

type ctxKey int

const userCtxKey ctxKey = 0

// requireAuth validates the bearer token and resolves its user before
// any catalog or upload handler runs. Handlers behind it can assume
// userFrom never returns nil.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			errorJSON(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		u, err := s.auth.UserFromToken(r.Context(), strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			errorJSON(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userCtxKey).(*models.User)
	return u
}
