package api

import (
	"time"

	_ "github.com/Kamar-Folarin/portfolio-service/docs"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

// ErrorResponse represents an API error
// @Description Error returned by every endpoint on failure
type ErrorResponse struct {
	// Human-readable message
	Error string `json:"error" example:"GitHub resource not found: /users/octocat"`
	// Error category
	Type string `json:"type" example:"NOT_FOUND"`
}

// ArticlesResponse is the payload of GET /articles
// @Description Aggregated RSS articles, newest first
type ArticlesResponse struct {
	Articles []models.Article `json:"articles"`
	Count    int              `json:"count" example:"42"`
	// Names of feeds that could not be fetched this time
	FailedFeeds []string  `json:"failed_feeds"`
	FetchedAt   time.Time `json:"fetched_at" example:"2024-03-20T12:00:00Z"`
}

// StatusResponse acknowledges an action
type StatusResponse struct {
	Status string `json:"status" example:"cleared"`
}

// HealthResponse is the payload of GET /health
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	LoadState string    `json:"load_state" example:"success"`
	Time      time.Time `json:"time"`
}
