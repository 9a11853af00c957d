package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := newStatus(cmd)
			backend := c.Config.Cache.Backend
			if backend == cache.BackendNone {
				st.info("Caching is disabled")
				return nil
			}
			cc, err := cache.Open(cmd.Context(), c.Config.CacheOptions())
			if err != nil {
				return fmt.Errorf("open %s cache: %w", backend, err)
			}
			defer cc.Close()

			if err := cache.Clear(cmd.Context(), cc); err != nil {
				return fmt.Errorf("clear %s cache: %w", backend, err)
			}
			st.success("Cleared %s cache", backend)
			if fc, ok := cc.(*cache.FileCache); ok {
				st.detail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(c.Config.Cache.Dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheDir returns the configured directory or the per-user default.
func cacheDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return cache.DefaultDir()
}
