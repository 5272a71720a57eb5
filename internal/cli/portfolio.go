package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/portfolio-service/internal/github"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print profile totals and top languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			portfolio, err := application.Service.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			printPortfolio(cmd.OutOrStdout(), portfolio)
			return nil
		},
	}
}

func newProjectsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Print featured projects with their language breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("limit") && limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			application, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			n := application.Config.ProjectsLimit
			if limit > 0 {
				n = limit
			}
			ctx, stop := context.WithCancel(cmd.Context())
			done := watchProgress(ctx, application.Service, loggerFromContext(ctx))
			projects, err := application.Service.Projects(ctx, n)
			stop()
			<-done
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of projects (default PROJECTS_LIMIT)")
	return cmd
}

func newArticlesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Print aggregated security news, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := application.Articles.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			printArticles(cmd.OutOrStdout(), result.Filter(category), result.FailedFeeds)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only show this category")
	return cmd
}

// watchProgress logs enrichment progress until ctx is cancelled. The returned
// channel is closed once the watcher has exited.
func watchProgress(ctx context.Context, reporter github.BatchProgressReporter, logger *logrus.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case progress := <-reporter.GetProgress():
				logger.WithFields(logrus.Fields{
					"batch":    fmt.Sprintf("%d/%d", progress.ProcessedBatches, progress.TotalBatches),
					"enriched": fmt.Sprintf("%d/%d", progress.ProcessedItems, progress.TotalItems),
				}).Debug("Enriching repositories")
			}
		}
	}()
	return done
}
