package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "ASSETS_DIR", "FRONTEND_DIR", "DATA_DIR", "METADATA_CSV",
		"DATABASE_URL", "REDIS_URL", "SESSION_TTL", "CORS_ORIGINS", "PUBLIC_URL", "GIN_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "assets", cfg.AssetsDir)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Len(t, cfg.CORSOrigins, 3)
	assert.Equal(t, "http://localhost:5000", cfg.PublicURL)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("PUBLIC_URL", "https://tarot.example/")
	t.Setenv("DATA_DIR", "/var/lib/tarot")
	t.Setenv("METADATA_CSV", "/etc/tarot/meta.csv")
	t.Setenv("GIN_MODE", "release")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "https://tarot.example", cfg.PublicURL)
	assert.Equal(t, "/etc/tarot/meta.csv", cfg.MetadataCSV)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"port":       {"PORT", "abc"},
		"port range": {"PORT", "70000"},
		"ttl":        {"SESSION_TTL", "soon"},
		"public url": {"PUBLIC_URL", "ftp://x"},
		"gin mode":   {"GIN_MODE", "verbose"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
