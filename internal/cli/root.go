// Package cli implements the portfolio command-line interface.
//
// The CLI shares its wiring with the HTTP server through internal/app, so
// every command sees the same cache, GitHub client and feed configuration.
//
// # Commands
//
//   - serve: run the HTTP API
//   - stats: print profile totals and top languages
//   - projects: print featured projects with language breakdowns
//   - articles: print aggregated security news
//   - cache clear: drop every cached response
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/portfolio-service/internal/app"
	"github.com/Kamar-Folarin/portfolio-service/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the portfolio CLI until the command completes or ctx is cancelled
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Portfolio serves GitHub profile data and security news",
		Long:         `Portfolio fetches a GitHub profile, its repositories and their languages, aggregates security RSS feeds, and serves the result over HTTP or prints it to the terminal.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// command output goes to stdout, logs stay on stderr
			level := logrus.WarnLevel
			if verbose {
				level = logrus.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("portfolio %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newProjectsCmd())
	root.AddCommand(newArticlesCmd())
	root.AddCommand(newCacheCmd())

	return root
}

func newLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	logger.SetLevel(level)
	return logger
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *logrus.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to the standard logrus logger when none is attached
func loggerFromContext(ctx context.Context) *logrus.Logger {
	if l, ok := ctx.Value(loggerKey).(*logrus.Logger); ok {
		return l
	}
	return logrus.StandardLogger()
}

// openApp loads the configuration and builds the application for a command.
// The returned cleanup closes the cache.
func openApp(cmd *cobra.Command) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	// one-shot commands have no consumer for a background load
	cfg.AutoFetch = false

	logger := loggerFromContext(cmd.Context())
	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return application, func() {
		if err := application.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close cache")
		}
	}, nil
}
