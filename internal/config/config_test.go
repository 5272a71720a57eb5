package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/portfolio-service/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "octocat")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.AutoFetch)
	assert.Equal(t, 12, cfg.ProjectsLimit)
	assert.Equal(t, "octocat", cfg.GitHub.Username)
	assert.False(t, cfg.GitHub.HasToken())
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIBaseURL)
	assert.Equal(t, "pushed", cfg.GitHub.Repos.Sort)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 200, cfg.RSS.MaxDescription)
	assert.Len(t, cfg.RSS.Feeds, 3)
}

func TestLoad_MissingUsername(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "GITHUB_USERNAME")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("GITHUB_TOKEN", "secret")
	t.Setenv("GITHUB_API_BASE_URL", "http://localhost:9999/")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_BACKEND", "REDIS")
	t.Setenv("AUTO_FETCH", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.GitHub.HasToken())
	assert.Equal(t, "http://localhost:9999", cfg.GitHub.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.False(t, cfg.AutoFetch)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown cache backend", "CACHE_BACKEND", "memcached"},
		{"non numeric projects limit", "PROJECTS_LIMIT", "twelve"},
		{"non boolean auto fetch", "AUTO_FETCH", "sometimes"},
		{"negative description budget", "RSS_MAX_DESCRIPTION", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_USERNAME", "octocat")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, apperrors.IsConfiguration(err))
		})
	}
}

func TestLoad_PostgresBackend(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("CACHE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio?sslmode=disable")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CacheBackendPostgres, cfg.Cache.Backend)
	assert.Equal(t, "postgres://localhost/portfolio?sslmode=disable", cfg.Cache.DatabaseURL)
}

func TestLoadFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.toml")
	content := `
[[feed]]
name = "CERT-FR"
url = "https://www.cert.ssi.gouv.fr/feed/"
category = "vulnerabilities"

[[feed]]
name = "CNIL"
url = "https://www.cnil.fr/fr/rss.xml"
category = "privacy"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	feeds, err := LoadFeeds(path)
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	assert.Equal(t, FeedConfig{Name: "CNIL", URL: "https://www.cnil.fr/fr/rss.xml", Category: "privacy"}, feeds[1])

	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("RSS_FEEDS_FILE", path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, feeds, cfg.RSS.Feeds)
}

func TestLoadFeeds_Missing(t *testing.T) {
	_, err := LoadFeeds(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestRSSConfig_Validate(t *testing.T) {
	cfg := DefaultRSSConfig()
	require.NoError(t, cfg.Validate())

	cfg.Feeds = append(cfg.Feeds, FeedConfig{Name: "no url"})
	assert.Error(t, cfg.Validate())

	cfg = DefaultRSSConfig()
	cfg.ProxyURL = "not a url"
	assert.Error(t, cfg.Validate())
}
