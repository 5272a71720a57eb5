package github

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Kamar-Folarin/portfolio-service/internal/batch"
	"github.com/Kamar-Folarin/portfolio-service/internal/config"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
	"github.com/Kamar-Folarin/portfolio-service/internal/utils"
)

// Service aggregates GitHub data for the portfolio
type Service struct {
	client       API
	batch        *batch.Processor[models.Repository]
	repoDefaults RepoListOptions
	logger       *logrus.Logger
}

// NewService creates a new portfolio service on top of a GitHub client
func NewService(client API, batchCfg *config.BatchConfig, repoDefaults RepoListOptions, logger *logrus.Logger) *Service {
	return &Service{
		client:       client,
		batch:        batch.NewProcessor[models.Repository](batchCfg),
		repoDefaults: repoDefaults.WithDefaults(DefaultRepoListOptions()),
		logger:       logger,
	}
}

// Profile gets the user's public profile
func (s *Service) Profile(ctx context.Context) (*models.User, error) {
	return s.client.FetchUserProfile(ctx)
}

// Repositories lists the user's repositories, filling unset options from the defaults
func (s *Service) Repositories(ctx context.Context, opts RepoListOptions) ([]models.Repository, error) {
	return s.client.FetchUserRepos(ctx, opts.WithDefaults(s.repoDefaults))
}

// RepositoryLanguages gets the language breakdown of one of the user's
// repositories. Unlike EnrichWithLanguages, failures are returned.
func (s *Service) RepositoryLanguages(ctx context.Context, name string) (*models.EnrichedRepository, error) {
	languages, err := s.client.FetchRepoLanguages(ctx, s.client.Username(), name)
	if err != nil {
		return nil, err
	}
	breakdown, total := LanguageBreakdown(languages)
	return &models.EnrichedRepository{
		Repository: models.Repository{
			Name:     name,
			FullName: s.client.Username() + "/" + name,
		},
		LanguageStats: breakdown,
		TotalBytes:    total,
	}, nil
}

// FetchAll fetches the profile and the repository list concurrently and
// derives statistics once both have arrived.
func (s *Service) FetchAll(ctx context.Context) (*models.Portfolio, error) {
	start := time.Now()

	var (
		user  *models.User
		repos []models.Repository
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.client.FetchUserProfile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		repos, err = s.client.FetchUserRepos(gctx, s.repoDefaults)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := CalculateStats(user, repos)
	s.logger.WithFields(logrus.Fields{
		"repos":    stats.TotalRepos,
		"stars":    stats.TotalStars,
		"duration": time.Since(start).String(),
	}).Info("Fetched portfolio data")

	return &models.Portfolio{User: user, Repos: repos, Stats: stats}, nil
}

// EnrichWithLanguages attaches a language breakdown to repo. A failed lookup
// is logged and yields an empty breakdown, never an error.
func (s *Service) EnrichWithLanguages(ctx context.Context, repo models.Repository) models.EnrichedRepository {
	enriched := models.EnrichedRepository{
		Repository:    repo,
		LanguageStats: []models.LanguageStat{},
	}

	owner := utils.RepoOwner(repo.FullName, repo.URL, s.client.Username())
	languages, err := s.client.FetchRepoLanguages(ctx, owner, repo.Name)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"owner": owner,
			"repo":  repo.Name,
		}).Warn("Could not fetch repository languages")
		return enriched
	}

	enriched.LanguageStats, enriched.TotalBytes = LanguageBreakdown(languages)
	return enriched
}

// EnrichRepositories enriches the first limit non-fork repositories in
// batches. The result keeps the input order.
func (s *Service) EnrichRepositories(ctx context.Context, repos []models.Repository, limit int) []models.EnrichedRepository {
	if limit < 0 {
		limit = 0
	}
	selected := make([]models.Repository, 0, limit)
	for _, repo := range repos {
		if len(selected) == limit {
			break
		}
		if !repo.Fork {
			selected = append(selected, repo)
		}
	}

	enriched := make([]models.EnrichedRepository, len(selected))
	err := s.batch.ProcessItems(ctx, selected, func(ctx context.Context, i int, repo models.Repository) error {
		enriched[i] = s.EnrichWithLanguages(ctx, repo)
		return nil
	})
	if err != nil {
		// only cancellation gets here; unfinished slots fall back to bare repositories
		s.logger.WithError(err).Warn("Repository enrichment interrupted")
		for i := range enriched {
			if enriched[i].Name == "" {
				enriched[i] = models.EnrichedRepository{Repository: selected[i], LanguageStats: []models.LanguageStat{}}
			}
		}
	}
	return enriched
}

// Projects fetches the repository list and enriches the most recent non-fork entries
func (s *Service) Projects(ctx context.Context, limit int) ([]models.EnrichedRepository, error) {
	if limit <= 0 {
		return nil, NewValidationError("limit", fmt.Sprint(limit))
	}
	repos, err := s.client.FetchUserRepos(ctx, s.repoDefaults)
	if err != nil {
		return nil, err
	}
	return s.EnrichRepositories(ctx, repos, limit), nil
}

// ClearCache drops every cached GitHub response
func (s *Service) ClearCache(ctx context.Context) error {
	return s.client.ClearCache(ctx)
}

// GetProgress gets the latest progress of batch enrichment
func (s *Service) GetProgress() <-chan *models.BatchProgress {
	return s.batch.GetProgress()
}
