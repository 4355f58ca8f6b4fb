package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "movies_w_clusters/movies_clustered_pca_3d.csv", cfg.PCADatasetPath)
	assert.Equal(t, "movies_w_clusters/nmf_movies_with_clusters.csv", cfg.NMFDatasetPath)
	assert.Equal(t, time.Hour, cfg.PosterCacheTTL)
	assert.Equal(t, 120, cfg.PosterRateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.MongoURI)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POSTER_CACHE_TTL", "30m")
	t.Setenv("POSTER_RATE_LIMIT", "10")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.PosterCacheTTL)
	assert.Equal(t, 10, cfg.PosterRateLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("POSTER_CACHE_TTL", "una hora")
	t.Setenv("POSTER_RATE_LIMIT", "muchos")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.PosterCacheTTL)
	assert.Equal(t, 120, cfg.PosterRateLimit)
}

func TestLoad_LogLevelAliases(t *testing.T) {
	for _, lvl := range []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "WARNING"} {
		t.Run(lvl, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", lvl)
			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(lvl), cfg.LogLevel)
		})
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string][2]string{
		"port no numérico":   {"HTTP_PORT", "http"},
		"nivel de log":       {"LOG_LEVEL", "verbose"},
		"formato de log":     {"LOG_FORMAT", "xml"},
		"url de tmdb":        {"TMDB_BASE_URL", "no es una url"},
		"rate limit negativo": {"POSTER_RATE_LIMIT", "-1"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
