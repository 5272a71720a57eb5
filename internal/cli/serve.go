package cli

import (
	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/portfolio-service/internal/app"
	"github.com/Kamar-Folarin/portfolio-service/internal/config"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			logger := app.NewLogger(cfg.LogLevel)
			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					logger.WithError(err).Error("Failed to close cache")
				}
			}()

			return application.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}
