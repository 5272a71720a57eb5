package rss

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Kamar-Folarin/portfolio-service/internal/cache"
	"github.com/Kamar-Folarin/portfolio-service/internal/config"
	apperrors "github.com/Kamar-Folarin/portfolio-service/internal/errors"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

// pubDateLayouts are tried in order when parsing item dates
var pubDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
}

// Result is the outcome of one aggregation run
type Result struct {
	Articles    []models.Article `json:"articles"`
	FailedFeeds []string         `json:"failed_feeds"`
	FetchedAt   time.Time        `json:"fetched_at"`
}

// Filter returns the articles of one category. An empty category or "all"
// returns every article.
func (r *Result) Filter(category string) []models.Article {
	if category == "" || category == "all" {
		return r.Articles
	}
	filtered := make([]models.Article, 0, len(r.Articles))
	for _, article := range r.Articles {
		if strings.EqualFold(article.Category, category) {
			filtered = append(filtered, article)
		}
	}
	return filtered
}

type proxyResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Items   []proxyItem `json:"items"`
}

type proxyItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
}

// Aggregator merges several feeds, fetched through an RSS-to-JSON proxy,
// into one list ordered newest first.
type Aggregator struct {
	client         *http.Client
	proxyURL       string
	feeds          []config.FeedConfig
	maxDescription int
	cache          cache.Store
	logger         *logrus.Logger
	now            func() time.Time
}

// Option allows configuring the aggregator
type Option func(*Aggregator)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Aggregator) {
		a.client = hc
	}
}

// NewAggregator creates an aggregator for the configured feeds
func NewAggregator(cfg *config.RSSConfig, store cache.Store, logger *logrus.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		client:         &http.Client{Timeout: 30 * time.Second},
		proxyURL:       cfg.ProxyURL,
		feeds:          cfg.Feeds,
		maxDescription: cfg.MaxDescription,
		cache:          store,
		logger:         logger,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Feeds returns the configured feeds
func (a *Aggregator) Feeds() []config.FeedConfig {
	return a.feeds
}

// Fetch retrieves every feed concurrently. A failing feed is logged and
// contributes nothing; only when no feed yields an article is an error returned.
func (a *Aggregator) Fetch(ctx context.Context) (*Result, error) {
	perFeed := make([][]models.Article, len(a.feeds))
	failed := make([]bool, len(a.feeds))

	var g errgroup.Group
	for i, feed := range a.feeds {
		i, feed := i, feed
		g.Go(func() error {
			articles, err := a.fetchFeed(ctx, feed)
			if err != nil {
				a.logger.WithError(err).WithFields(logrus.Fields{
					"feed": feed.Name,
					"url":  feed.URL,
				}).Warn("Failed to fetch RSS feed")
				failed[i] = true
				return nil
			}
			perFeed[i] = articles
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Articles:    []models.Article{},
		FailedFeeds: []string{},
		FetchedAt:   a.now(),
	}
	for i, articles := range perFeed {
		if failed[i] {
			result.FailedFeeds = append(result.FailedFeeds, a.feeds[i].Name)
		}
		result.Articles = append(result.Articles, articles...)
	}

	if len(result.Articles) == 0 {
		return nil, apperrors.NewNoArticlesError(len(a.feeds))
	}

	sort.SliceStable(result.Articles, func(i, j int) bool {
		return result.Articles[i].PublishedAt.After(result.Articles[j].PublishedAt)
	})

	a.logger.WithFields(logrus.Fields{
		"articles":     len(result.Articles),
		"feeds":        len(a.feeds),
		"failed_feeds": len(result.FailedFeeds),
	}).Info("Aggregated RSS feeds")

	return result, nil
}

func (a *Aggregator) fetchFeed(ctx context.Context, feed config.FeedConfig) ([]models.Article, error) {
	body, err := a.proxyBody(ctx, feed)
	if err != nil {
		return nil, err
	}

	var resp proxyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}

	articles := make([]models.Article, 0, len(resp.Items))
	for _, item := range resp.Items {
		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Description: Truncate(StripHTML(item.Description), a.maxDescription),
			PublishedAt: parsePubDate(item.PubDate),
			Source:      feed.Name,
			Category:    feed.Category,
		})
	}
	return articles, nil
}

// proxyBody returns the proxy's JSON for a feed, from the cache when fresh.
// Only responses with status "ok" are cached.
func (a *Aggregator) proxyBody(ctx context.Context, feed config.FeedConfig) ([]byte, error) {
	key := "rss:" + feed.URL
	if body, ok, err := a.cache.Get(ctx, key); err == nil && ok {
		return body, nil
	}

	endpoint := a.proxyURL + "?rss_url=" + url.QueryEscape(feed.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("proxy returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var status proxyResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if status.Status != "ok" {
		return nil, fmt.Errorf("proxy reported status %q: %s", status.Status, status.Message)
	}

	if err := a.cache.Set(ctx, key, body); err != nil {
		a.logger.WithError(err).WithField("key", key).Warn("Failed to store feed in cache")
	}
	return body, nil
}

func parsePubDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
