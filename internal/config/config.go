package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultOrigins = []string{
	"http://localhost:5000",
	"https://mascarponelove.github.io",
	"https://sbtatrot-backend.onrender.com",
}

type Config struct {
	Port        int
	AssetsDir   string
	FrontendDir string
	DataDir     string
	MetadataCSV string
	DatabaseURL string
	RedisURL    string
	SessionTTL  time.Duration
	CORSOrigins []string
	PublicURL   string
	GinMode     string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := 5000
	if p := os.Getenv("PORT"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v <= 0 || v > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", p)
		}
		port = v
	}

	ttl := 24 * time.Hour
	if s := os.Getenv("SESSION_TTL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL %q", s)
		}
		ttl = d
	}

	publicURL := getEnv("PUBLIC_URL", fmt.Sprintf("http://localhost:%d", port))
	u, err := url.ParseRequestURI(publicURL)
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLIC_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid PUBLIC_URL scheme: %s (must be http or https)", u.Scheme)
	}

	ginMode := os.Getenv("GIN_MODE")
	switch ginMode {
	case "", "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q (must be debug, release or test)", ginMode)
	}

	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		Port:        port,
		AssetsDir:   getEnv("ASSETS_DIR", "assets"),
		FrontendDir: getEnv("FRONTEND_DIR", "frontend"),
		DataDir:     dataDir,
		MetadataCSV: getEnv("METADATA_CSV", filepath.Join(dataDir, "metadata.csv")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		SessionTTL:  ttl,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", strings.Join(defaultOrigins, ","))),
		PublicURL:   strings.TrimRight(publicURL, "/"),
		GinMode:     ginMode,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
