package config

import (
	"fmt"
	"net/url"

	"github.com/BurntSushi/toml"

	apperrors "github.com/Kamar-Folarin/portfolio-service/internal/errors"
)

// FeedConfig describes one RSS feed to aggregate
type FeedConfig struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	Category string `toml:"category"`
}

// RSSConfig holds RSS aggregation configuration
type RSSConfig struct {
	ProxyURL       string
	MaxDescription int
	FeedsFile      string
	Feeds          []FeedConfig
}

type feedsFile struct {
	Feeds []FeedConfig `toml:"feed"`
}

// DefaultRSSConfig returns the default RSS configuration
func DefaultRSSConfig() *RSSConfig {
	return &RSSConfig{
		ProxyURL:       "https://api.rss2json.com/v1/api.json",
		MaxDescription: 200,
		Feeds: []FeedConfig{
			{Name: "CERT-FR", URL: "https://www.cert.ssi.gouv.fr/feed/", Category: "vulnerabilities"},
			{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews", Category: "threats"},
			{Name: "CNIL", URL: "https://www.cnil.fr/fr/rss.xml", Category: "privacy"},
		},
	}
}

// LoadFeeds reads feed definitions from a TOML file of the form
//
//	[[feed]]
//	name = "CERT-FR"
//	url = "https://www.cert.ssi.gouv.fr/feed/"
//	category = "vulnerabilities"
func LoadFeeds(path string) ([]FeedConfig, error) {
	var f feedsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("failed to read feeds file %s", path), err)
	}
	return f.Feeds, nil
}

// Validate checks the RSS configuration
func (c *RSSConfig) Validate() error {
	if c == nil {
		return apperrors.NewConfigurationError("RSS configuration is missing", nil)
	}
	if _, err := url.ParseRequestURI(c.ProxyURL); err != nil {
		return apperrors.NewConfigurationError("RSS_PROXY_URL is not a valid URL", err)
	}
	if c.MaxDescription <= 0 {
		return apperrors.NewConfigurationError("RSS_MAX_DESCRIPTION must be positive", nil)
	}
	for i, feed := range c.Feeds {
		if feed.Name == "" || feed.URL == "" {
			return apperrors.NewConfigurationError(fmt.Sprintf("feed #%d needs a name and a url", i+1), nil)
		}
	}
	return nil
}
