package config

import "time"

// GitHubConfig holds GitHub-specific configuration
type GitHubConfig struct {
	Username   string
	Token      string
	APIBaseURL string
	UserAgent  string
	Timeout    time.Duration
	Repos      RepoListConfig
}

// RepoListConfig holds the defaults used when listing the user's repositories
type RepoListConfig struct {
	Sort      string
	Direction string
	PerPage   int
}

// DefaultGitHubConfig returns the default GitHub configuration
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		APIBaseURL: "https://api.github.com",
		UserAgent:  "portfolio-service",
		Timeout:    30 * time.Second,
		Repos: RepoListConfig{
			Sort:      "pushed",
			Direction: "desc",
			PerPage:   100,
		},
	}
}

// HasToken reports whether authenticated requests are configured
func (c *GitHubConfig) HasToken() bool {
	return c.Token != ""
}
