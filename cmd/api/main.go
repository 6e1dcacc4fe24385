package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/api"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/auth"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/catalog"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/config"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/store"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/upload"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.Error("db migrate failed", "err", err)
		os.Exit(1)
	}
	logger.Info("db connected")

	gateway, err := upload.NewS3Gateway(context.Background(), upload.Options{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Error("upload gateway init failed", "err", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(store.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL)
	catalogSvc := catalog.NewService(store.NewMovieRepository(db))

	srv := api.New(cfg, logger, authSvc, catalogSvc, gateway)

	logger.Info("API listening", "port", cfg.Port, "cors_origin", cfg.CORSOrigin)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
