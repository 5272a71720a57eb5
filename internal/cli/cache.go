package cli

import (
	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/portfolio-service/internal/config"
	"github.com/Kamar-Folarin/portfolio-service/internal/db"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePruneCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached GitHub and RSS response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			backend := application.Config.Cache.Backend
			if backend == config.CacheBackendMemory {
				printInfo(out, "The in-memory cache lives in the server process; nothing to clear here")
				return nil
			}
			if err := application.Service.ClearCache(cmd.Context()); err != nil {
				return err
			}
			printSuccess(out, "Cache cleared")
			printDetail(out, "Backend: %s", backend)
			return nil
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete stale rows from the postgres cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			store, ok := application.Cache.(*db.PostgresStore)
			if !ok {
				printInfo(out, "The %s backend expires entries on its own", application.Config.Cache.Backend)
				return nil
			}
			removed, err := store.Prune(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess(out, "Removed %d stale entries", removed)
			return nil
		},
	}
}
