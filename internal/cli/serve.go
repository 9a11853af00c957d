package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		maxLayouts int
		idleTTL    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

Clients create a layout from a tile sequence, then query frames by index or
viewport and resize it. Layouts are kept in memory; the least recently used
are evicted beyond --max-layouts and idle ones expire after --idle-ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv, err := server.New(server.Options{
				MaxLayouts: maxLayouts,
				IdleTTL:    idleTTL,
				Defaults: pipeline.Options{
					Width:       c.Config.Layout.Width,
					SidePadding: c.Config.Layout.Padding,
					CellSpacing: c.Config.Layout.Spacing,
					Seed:        c.Config.Render.Seed,
				},
			}, c.Logger)
			if err != nil {
				return err
			}

			st := newStatus(cmd)
			st.info("Serving tilegrid API")
			st.keyValue("address", addr)
			st.keyValue("max layouts", strconv.Itoa(maxLayouts))
			st.keyValue("idle ttl", idleTTL.String())
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr)")
	cmd.Flags().IntVar(&maxLayouts, "max-layouts", server.DefaultMaxLayouts, "maximum number of layouts kept in memory")
	cmd.Flags().DurationVar(&idleTTL, "idle-ttl", server.DefaultIdleTTL, "drop layouts unused for this long")

	return cmd
}
