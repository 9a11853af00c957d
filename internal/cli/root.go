package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands
// registered.
//
// Before any subcommand runs, the configuration file is loaded (from
// --config or the default path) and --verbose switches the logger to debug
// level and installs log hooks for pipeline, query and cache events.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tilegrid packs tiles into segments and lays them out in a grid",
		Long: `Tilegrid groups a sequence of sized tiles (1x1, 2x1, 1x2, 1x0.5) into
segments following a fixed set of patterns, computes on-screen frames for a
container width, and answers frame lookups by index or by viewport.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Install()
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.Path()+")")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
