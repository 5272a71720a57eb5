package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-service/internal/github"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
	"github.com/Kamar-Folarin/portfolio-service/internal/rss"
)

// PortfolioLoader is the consumption state machine behind /portfolio
type PortfolioLoader interface {
	Snapshot() models.LoadStatus
	Refetch(ctx context.Context) (models.LoadStatus, error)
	ForceRefetch(ctx context.Context) (models.LoadStatus, error)
}

// ArticleSource aggregates RSS articles
type ArticleSource interface {
	Fetch(ctx context.Context) (*rss.Result, error)
}

// Handler serves the portfolio API
type Handler struct {
	portfolio     github.PortfolioService
	loader        PortfolioLoader
	articles      ArticleSource
	projectsLimit int
	logger        *logrus.Logger
}

// NewHandler creates a new API handler
func NewHandler(portfolio github.PortfolioService, loader PortfolioLoader, articles ArticleSource, projectsLimit int, logger *logrus.Logger) *Handler {
	return &Handler{
		portfolio:     portfolio,
		loader:        loader,
		articles:      articles,
		projectsLimit: projectsLimit,
		logger:        logger,
	}
}

// GetProfile godoc
// @Summary Get the GitHub profile
// @Description Get the configured user's public GitHub profile
// @Tags github
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.portfolio.Profile(c.Request.Context())
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListRepositories godoc
// @Summary List repositories
// @Description List the first page of the user's repositories
// @Tags github
// @Produce json
// @Param sort query string false "created, updated, pushed or full_name" default(pushed)
// @Param direction query string false "asc or desc" default(desc)
// @Param per_page query int false "Page size, 1 to 100" default(100)
// @Success 200 {array} models.Repository
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /repos [get]
func (h *Handler) ListRepositories(c *gin.Context) {
	var opts github.RepoListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		h.respondWithBadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	repos, err := h.portfolio.Repositories(c.Request.Context(), opts)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

// GetRepositoryLanguages godoc
// @Summary Get repository languages
// @Description Get the language breakdown of one of the user's repositories
// @Tags github
// @Produce json
// @Param name path string true "Repository name"
// @Success 200 {object} models.EnrichedRepository
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /repos/{name}/languages [get]
func (h *Handler) GetRepositoryLanguages(c *gin.Context) {
	repo, err := h.portfolio.RepositoryLanguages(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repo)
}

// GetStats godoc
// @Summary Get aggregate statistics
// @Description Totals and top languages computed over non-fork repositories
// @Tags github
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	portfolio, err := h.portfolio.FetchAll(c.Request.Context())
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio.Stats)
}

// GetPortfolio godoc
// @Summary Get the portfolio load state
// @Description Current profile, repositories and statistics with the load state. An idle loader is started first.
// @Tags portfolio
// @Produce json
// @Success 200 {object} models.LoadStatus
// @Router /portfolio [get]
func (h *Handler) GetPortfolio(c *gin.Context) {
	status := h.loader.Snapshot()
	if status.State == models.StateIdle {
		// errors are part of the returned state
		status, _ = h.loader.Refetch(c.Request.Context())
	}
	c.JSON(http.StatusOK, status)
}

// RefreshPortfolio godoc
// @Summary Refresh the portfolio
// @Description Drop cached GitHub responses and load the portfolio again
// @Tags portfolio
// @Produce json
// @Success 200 {object} models.LoadStatus
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /portfolio/refresh [post]
func (h *Handler) RefreshPortfolio(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.portfolio.ClearCache(ctx); err != nil {
		h.respondWithError(c, err)
		return
	}

	status, err := h.loader.ForceRefetch(ctx)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetProjects godoc
// @Summary Get featured projects
// @Description Most recently pushed non-fork repositories with language breakdowns
// @Tags portfolio
// @Produce json
// @Param limit query int false "Number of projects" default(12)
// @Success 200 {array} models.EnrichedRepository
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /projects [get]
func (h *Handler) GetProjects(c *gin.Context) {
	limit := h.projectsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.respondWithBadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	projects, err := h.portfolio.Projects(c.Request.Context(), limit)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetArticles godoc
// @Summary Get security news
// @Description Articles from every configured RSS feed, newest first
// @Tags rss
// @Produce json
// @Param category query string false "Only articles of this category"
// @Success 200 {object} ArticlesResponse
// @Failure 404 {object} ErrorResponse "No feed returned any article"
// @Router /articles [get]
func (h *Handler) GetArticles(c *gin.Context) {
	result, err := h.articles.Fetch(c.Request.Context())
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	articles := result.Filter(c.Query("category"))
	c.JSON(http.StatusOK, ArticlesResponse{
		Articles:    articles,
		Count:       len(articles),
		FailedFeeds: result.FailedFeeds,
		FetchedAt:   result.FetchedAt,
	})
}

// ClearCache godoc
// @Summary Clear the response cache
// @Tags cache
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /cache [delete]
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.portfolio.ClearCache(c.Request.Context()); err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "cleared"})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		LoadState: string(h.loader.Snapshot().State),
		Time:      time.Now().UTC(),
	})
}
