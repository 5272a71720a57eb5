package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Kamar-Folarin/portfolio-service/internal/errors"
)

// Config holds the service configuration. It is built once at startup and
// passed explicitly to every component.
type Config struct {
	Port          string
	LogLevel      string
	AutoFetch     bool
	ProjectsLimit int
	GitHub        *GitHubConfig
	Cache         *CacheConfig
	RSS           *RSSConfig
	Batch         *BatchConfig
}

// BatchConfig controls how repositories are enriched in batches
type BatchConfig struct {
	Size  int
	Delay time.Duration
}

// CacheConfig selects and tunes the response cache backend
type CacheConfig struct {
	Backend       string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	DatabaseURL   string
}

const (
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
)

// Load reads configuration from environment variables and validates it.
// A missing GitHub username is reported as a configuration error.
func Load() (*Config, error) {
	gh := DefaultGitHubConfig()
	gh.Username = strings.TrimSpace(getEnv("GITHUB_USERNAME", ""))
	gh.Token = getEnv("GITHUB_TOKEN", "")
	gh.APIBaseURL = strings.TrimSuffix(getEnv("GITHUB_API_BASE_URL", gh.APIBaseURL), "/")
	gh.Timeout = getDuration("GITHUB_TIMEOUT", gh.Timeout)

	rss := DefaultRSSConfig()
	rss.ProxyURL = getEnv("RSS_PROXY_URL", rss.ProxyURL)
	rss.FeedsFile = getEnv("RSS_FEEDS_FILE", "")
	maxDesc, err := getInt("RSS_MAX_DESCRIPTION", rss.MaxDescription)
	if err != nil {
		return nil, err
	}
	rss.MaxDescription = maxDesc
	if rss.FeedsFile != "" {
		feeds, err := LoadFeeds(rss.FeedsFile)
		if err != nil {
			return nil, err
		}
		rss.Feeds = feeds
	}

	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	projectsLimit, err := getInt("PROJECTS_LIMIT", 12)
	if err != nil {
		return nil, err
	}
	batchSize, err := getInt("ENRICH_BATCH_SIZE", 6)
	if err != nil {
		return nil, err
	}
	autoFetch, err := strconv.ParseBool(getEnv("AUTO_FETCH", "true"))
	if err != nil {
		return nil, apperrors.NewConfigurationError("AUTO_FETCH must be a boolean", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AutoFetch:     autoFetch,
		ProjectsLimit: projectsLimit,
		GitHub:        gh,
		Cache: &CacheConfig{
			Backend:       strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
			TTL:           getDuration("CACHE_TTL", 5*time.Minute),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			RedisPrefix:   getEnv("REDIS_PREFIX", "portfolio:"),
			DatabaseURL:   getEnv("DATABASE_URL", ""),
		},
		RSS: rss,
		Batch: &BatchConfig{
			Size:  batchSize,
			Delay: getDuration("ENRICH_BATCH_DELAY", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the services rely on
func (c *Config) Validate() error {
	if c.GitHub == nil || c.GitHub.Username == "" {
		return apperrors.NewConfigurationError("GITHUB_USERNAME is required", nil)
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	case CacheBackendPostgres:
		if c.Cache.DatabaseURL == "" {
			return apperrors.NewConfigurationError("DATABASE_URL is required for the postgres cache backend", nil)
		}
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown CACHE_BACKEND %q", c.Cache.Backend), nil)
	}
	if c.Cache.TTL <= 0 {
		return apperrors.NewConfigurationError("CACHE_TTL must be positive", nil)
	}
	if c.ProjectsLimit <= 0 {
		return apperrors.NewConfigurationError("PROJECTS_LIMIT must be positive", nil)
	}
	if c.Batch != nil && c.Batch.Size <= 0 {
		return apperrors.NewConfigurationError("ENRICH_BATCH_SIZE must be positive", nil)
	}
	return c.RSS.Validate()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.NewConfigurationError(fmt.Sprintf("%s must be an integer", key), err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
