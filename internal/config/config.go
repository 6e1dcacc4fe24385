package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed down explicitly. Nothing
// reads the environment after Load returns.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	Port        string
	CORSOrigin  string

	// Upload gateway (S3-compatible object store)
	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

func Load() (Config, error) {
	_ = godotenv.Load() // load .env if present (ok if missing in prod)

	for _, k := range []string{"DATABASE_URL", "JWT_SECRET"} {
		if os.Getenv(k) == "" {
			return Config{}, fmt.Errorf("missing required env %s", k)
		}
	}

	ttlHours := 24
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL_HOURS %q", v)
		}
		ttlHours = n
	}

	return Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    time.Duration(ttlHours) * time.Hour,
		Port:        getenv("PORT", "8080"),
		CORSOrigin:  getenv("CORS_ORIGIN", "http://localhost:3000"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        getenv("S3_REGION", "us-east-1"),
		S3Bucket:        getenv("S3_BUCKET", "posters"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
