package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/auth"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/catalog"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/config"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/upload"
)

type Server struct {
	cfg      config.Config
	log      *slog.Logger
	auth     *auth.Service
	catalog  *catalog.Service
	uploads  upload.Gateway
	validate *validator.Validate
}

func New(cfg config.Config, log *slog.Logger, authSvc *auth.Service, catalogSvc *catalog.Service, uploads upload.Gateway) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		auth:     authSvc,
		catalog:  catalogSvc,
		uploads:  uploads,
		validate: validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(s.cfg.CORSOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	// Auth
	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)

	// Owner-scoped catalog + uploads
	r.Group(func(pr chi.Router) {
		pr.Use(s.requireAuth)
		pr.Post("/api/movies", s.handleCreateMovie)
		pr.Get("/api/movies", s.handleListMovies)
		pr.Get("/api/movies/{id}", s.handleGetMovie)
		pr.Patch("/api/movies/{id}", s.handleUpdateMovie)
		pr.Delete("/api/movies/{id}", s.handleDeleteMovie)
		pr.Post("/api/upload/poster", s.handleUploadPoster)
	})

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
