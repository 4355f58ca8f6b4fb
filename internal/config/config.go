package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"cinecluster/internal/logging"
)

type Config struct {
	HTTPPort string `validate:"required,numeric"`

	PCADatasetPath string `validate:"required"`
	NMFDatasetPath string `validate:"required"`

	TMDBAPIToken     string
	TMDBBaseURL      string        `validate:"required,url"`
	TMDBImageBaseURL string        `validate:"required,url"`
	PosterCacheTTL   time.Duration `validate:"gt=0"`
	PosterRateLimit  int           `validate:"gt=0"`

	// Redis y Mongo son opcionales: vacío = deshabilitado
	RedisAddr string
	RedisPass string
	MongoURI  string
	MongoDB   string `validate:"required_with=MongoURI"`

	JWTSecret         string `validate:"required"`
	AdminUser         string
	AdminPasswordHash string

	LogLevel    string `validate:"oneof=trace debug info warn warning error disabled"`
	LogFormat   string `validate:"oneof=json console"`
	CORSOrigins []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		PCADatasetPath:    getEnv("PCA_DATASET_PATH", "movies_w_clusters/movies_clustered_pca_3d.csv"),
		NMFDatasetPath:    getEnv("NMF_DATASET_PATH", "movies_w_clusters/nmf_movies_with_clusters.csv"),
		TMDBAPIToken:      getEnv("TMDB_API_TOKEN", ""),
		TMDBBaseURL:       getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageBaseURL:  getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),
		PosterCacheTTL:    getDuration("POSTER_CACHE_TTL", time.Hour),
		PosterRateLimit:   getInt("POSTER_RATE_LIMIT", 120),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPass:         getEnv("REDIS_PASSWORD", ""),
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDB:           getEnv("MONGO_DB", "cinecluster"),
		JWTSecret:         getEnv("JWT_SECRET", "super-secret"),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "json")),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa los campos con las etiquetas `validate`.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config inválida: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		logging.Debug().Str("key", key).Msg("[config] variable no seteada, usando valor por defecto")
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Msg("[config] entero inválido, usando valor por defecto")
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Msg("[config] duración inválida, usando valor por defecto")
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
