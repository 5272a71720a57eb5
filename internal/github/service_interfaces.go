package github

import (
	"context"

	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

// API defines the GitHub calls the service is built on
type API interface {
	// Username returns the GitHub handle data is fetched for
	Username() string

	// FetchUserProfile gets the user's public profile
	FetchUserProfile(ctx context.Context) (*models.User, error)

	// FetchUserRepos gets the first page of the user's repositories
	FetchUserRepos(ctx context.Context, opts RepoListOptions) ([]models.Repository, error)

	// FetchRepoLanguages gets the language byte counts of a repository
	FetchRepoLanguages(ctx context.Context, owner, repo string) (models.Languages, error)

	// ClearCache drops every cached response
	ClearCache(ctx context.Context) error
}

// PortfolioService defines the aggregation operations consumed by the API and loader
type PortfolioService interface {
	// Profile gets the user's public profile
	Profile(ctx context.Context) (*models.User, error)

	// Repositories lists the user's repositories
	Repositories(ctx context.Context, opts RepoListOptions) ([]models.Repository, error)

	// RepositoryLanguages gets the language breakdown of one of the user's repositories
	RepositoryLanguages(ctx context.Context, name string) (*models.EnrichedRepository, error)

	// FetchAll gets profile and repositories together and derives statistics
	FetchAll(ctx context.Context) (*models.Portfolio, error)

	// Projects gets the user's most recent non-fork repositories with language breakdowns
	Projects(ctx context.Context, limit int) ([]models.EnrichedRepository, error)

	// ClearCache drops every cached GitHub response
	ClearCache(ctx context.Context) error
}

// BatchProgressReporter exposes enrichment progress
type BatchProgressReporter interface {
	// GetProgress gets the latest progress of batch enrichment
	GetProgress() <-chan *models.BatchProgress
}
