// Package app wires configuration, cache, GitHub and RSS services into a
// runnable service shared by the server and CLI entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-service/internal/api"
	"github.com/Kamar-Folarin/portfolio-service/internal/cache"
	"github.com/Kamar-Folarin/portfolio-service/internal/config"
	"github.com/Kamar-Folarin/portfolio-service/internal/db"
	"github.com/Kamar-Folarin/portfolio-service/internal/github"
	"github.com/Kamar-Folarin/portfolio-service/internal/loader"
	"github.com/Kamar-Folarin/portfolio-service/internal/models"
	"github.com/Kamar-Folarin/portfolio-service/internal/rss"
)

// App holds every long-lived component
type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Cache    cache.Store
	Client   *github.Client
	Service  *github.Service
	Loader   *loader.Loader
	Articles *rss.Aggregator
}

// NewLogger creates the JSON logger used by every component
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// New builds the application. The caller owns the result and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	store, err := NewCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(cfg.GitHub, store, logger)
	service := github.NewService(client, cfg.Batch, github.RepoListOptionsFromConfig(cfg.GitHub.Repos), logger)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Cache:   store,
		Client:  client,
		Service: service,
		Loader: loader.New(service, logger, loader.Options{
			AutoFetch: cfg.AutoFetch,
			OnSuccess: func(p *models.Portfolio) {
				logger.WithField("login", p.User.Login).Debug("Portfolio state updated")
			},
			OnError: func(err error) {
				logger.WithError(err).Warn("Portfolio state is in error")
			},
		}),
		Articles: rss.NewAggregator(cfg.RSS, store, logger),
	}, nil
}

// NewCache creates the configured cache backend
func NewCache(ctx context.Context, cfg *config.CacheConfig, logger *logrus.Logger) (cache.Store, error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		var store *cache.Redis
		err := retry(3, 2*time.Second, func() error {
			var err error
			store, err = cache.NewRedis(ctx, cache.RedisOptions{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
				Prefix:   cfg.RedisPrefix,
				TTL:      cfg.TTL,
			})
			if err != nil {
				logger.WithError(err).Warn("Redis not reachable yet")
			}
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		logger.WithField("addr", cfg.RedisAddr).Info("Using redis cache")
		return store, nil
	case config.CacheBackendPostgres:
		var store *db.PostgresStore
		err := retry(3, 2*time.Second, func() error {
			var err error
			store, err = db.NewPostgresStore(ctx, cfg.DatabaseURL, cfg.TTL)
			if err != nil {
				logger.WithError(err).Warn("Database not reachable yet")
			}
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres cache: %w", err)
		}
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, err
		}
		logger.Info("Using postgres cache")
		return store, nil
	default:
		logger.WithField("ttl", cfg.TTL.String()).Info("Using in-memory cache")
		return cache.NewMemory(cfg.TTL), nil
	}
}

// Router builds the HTTP router
func (a *App) Router() *gin.Engine {
	handler := api.NewHandler(a.Service, a.Loader, a.Articles, a.Config.ProjectsLimit, a.Logger)
	return api.SetupRouter(handler, a.Logger)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully
func (a *App) Serve(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.Loader.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Infof("Server starting on port %s", a.Config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	a.Logger.Info("Server exited properly")
	return nil
}

// Close releases the cache
func (a *App) Close() error {
	return a.Cache.Close()
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
