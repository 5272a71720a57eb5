package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/Kamar-Folarin/portfolio-service/internal/cache"
	"github.com/Kamar-Folarin/portfolio-service/internal/config"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

const acceptHeader = "application/vnd.github.v3+json"

// RateLimitInfo holds information about GitHub API rate limits
type RateLimitInfo struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetTime time.Time `json:"reset_time"`
}

// Client is a cache-backed client for the GitHub REST API. Concurrent
// requests for the same cache key share a single network call.
type Client struct {
	client    *http.Client
	baseURL   string
	username  string
	token     string
	userAgent string
	cache     cache.Store
	logger    *logrus.Logger
	inflight  singleflight.Group

	mu            sync.RWMutex
	rateLimitInfo RateLimitInfo
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The bearer token, if any,
// is still applied on top of its transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithBaseURL points the client at a different API root
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewClient creates a new GitHub client for the configured user
func NewClient(cfg *config.GitHubConfig, store cache.Store, logger *logrus.Logger, opts ...ClientOption) *Client {
	c := &Client{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		username:  cfg.Username,
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		cache:     store,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.token != "" {
		authed := *c.client
		authed.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token}),
			Base:   c.client.Transport,
		}
		c.client = &authed
	}

	return c
}

// Username returns the GitHub handle the client fetches data for
func (c *Client) Username() string {
	return c.username
}

// RateLimit returns the rate limit values seen on the most recent response
func (c *Client) RateLimit() RateLimitInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rateLimitInfo
}

// FetchUserProfile gets the configured user's public profile
func (c *Client) FetchUserProfile(ctx context.Context) (*models.User, error) {
	if err := c.requireUsername(); err != nil {
		return nil, err
	}

	endpoint := "/users/" + url.PathEscape(c.username)
	var user models.User
	if err := c.request(ctx, endpoint, "user:"+c.username, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchUserRepos gets the first page of the configured user's repositories
func (c *Client) FetchUserRepos(ctx context.Context, opts RepoListOptions) ([]models.Repository, error) {
	if err := c.requireUsername(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults(DefaultRepoListOptions())
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/users/%s/repos?%s", url.PathEscape(c.username), opts.query())
	var repos []models.Repository
	if err := c.request(ctx, endpoint, opts.cacheKey(c.username), &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// FetchRepoLanguages gets the language byte counts of a repository
func (c *Client) FetchRepoLanguages(ctx context.Context, owner, repo string) (models.Languages, error) {
	if err := c.requireUsername(); err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, NewValidationError("owner", "cannot be empty")
	}
	if repo == "" {
		return nil, NewValidationError("repo", "cannot be empty")
	}

	endpoint := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(repo))
	languages := models.Languages{}
	if err := c.request(ctx, endpoint, fmt.Sprintf("languages:%s:%s", owner, repo), &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// ClearCache drops every cached response
func (c *Client) ClearCache(ctx context.Context) error {
	if err := c.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	c.logger.Info("GitHub response cache cleared")
	return nil
}

func (c *Client) requireUsername() error {
	if c.username == "" {
		return &ConfigError{Field: "username"}
	}
	return nil
}

// request returns the decoded response for endpoint, serving it from the
// cache when a fresh entry exists under cacheKey.
func (c *Client) request(ctx context.Context, endpoint, cacheKey string, out any) error {
	body, err := c.fetch(ctx, endpoint, cacheKey)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return NewAPIError(http.StatusOK, "failed to decode response", endpoint, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint, cacheKey string) ([]byte, error) {
	if body, ok := c.cached(ctx, cacheKey); ok {
		return body, nil
	}

	// the shared request outlives any single caller; the http client timeout bounds it
	flightCtx := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(cacheKey, func() (interface{}, error) {
		// a flight that finished just before this one may have filled the entry
		if body, ok := c.cached(flightCtx, cacheKey); ok {
			return body, nil
		}

		body, err := c.doRequest(flightCtx, endpoint)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(flightCtx, cacheKey, body); err != nil {
			c.logger.WithError(err).WithField("key", cacheKey).Warn("Failed to store response in cache")
		}
		return body, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.WithField("key", cacheKey).Debug("Joined in-flight GitHub request")
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache lookup failed, falling back to GitHub")
		return nil, false
	}
	if ok {
		c.logger.WithField("key", key).Debug("Serving GitHub response from cache")
	}
	return body, ok
}

// doRequest performs a single GET and classifies any failure
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("endpoint", endpoint).Warn("GitHub request failed")
		return nil, NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	c.updateRateLimitInfo(resp)

	logger := c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := classifyResponse(resp, endpoint)
		logger.WithError(err).Warn("GitHub request returned an error status")
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError(endpoint, fmt.Errorf("failed to read response body: %w", err))
	}
	if !json.Valid(body) {
		return nil, NewAPIError(resp.StatusCode, "invalid JSON in response", endpoint, nil)
	}

	logger.Info("Fetched from GitHub API")
	return body, nil
}

// classifyResponse maps a non-2xx response onto the error taxonomy
func classifyResponse(resp *http.Response, endpoint string) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{Endpoint: endpoint}
	case http.StatusForbidden, http.StatusTooManyRequests:
		limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
		remaining, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
		return NewRateLimitError(parseResetHeader(resp.Header.Get("X-RateLimit-Reset")), limit, remaining)
	case http.StatusUnauthorized:
		return &UnauthorizedError{}
	default:
		return NewAPIError(resp.StatusCode, statusText(resp), endpoint, nil)
	}
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func parseResetHeader(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	epoch, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(epoch, 0)
}

// updateRateLimitInfo updates the rate limit information from response headers
func (c *Client) updateRateLimitInfo(resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limit := resp.Header.Get("X-RateLimit-Limit"); limit != "" {
		c.rateLimitInfo.Limit, _ = strconv.Atoi(limit)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.rateLimitInfo.Remaining, _ = strconv.Atoi(remaining)
		if c.rateLimitInfo.Remaining <= 5 {
			c.logger.WithField("remaining", c.rateLimitInfo.Remaining).Warn("GitHub rate limit nearly exhausted")
		}
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		c.rateLimitInfo.ResetTime = parseResetHeader(reset)
	}
}
