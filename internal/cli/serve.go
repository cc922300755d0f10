package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"college-trip-planner/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		maxColleges int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.ServerAddr
			}
			if maxColleges == 0 {
				maxColleges = c.config.MaxExactColleges
			}

			srv, err := server.New(server.Config{
				Addr:             addr,
				DatabasePath:     c.config.DatabasePath,
				MaxExactColleges: maxColleges,
				SessionTTL:       c.config.TTL(),
			})
			if err != nil {
				return err
			}

			actualAddr, err := srv.Start()
			if err != nil {
				return err
			}
			c.Logger.Infof("Serving on http://%s/api/v1", actualAddr)

			<-cmd.Context().Done()
			c.Logger.Info("Shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to the config value)")
	cmd.Flags().IntVar(&maxColleges, "max-colleges", 0, "largest trip solved exactly (0 uses the config value)")

	return cmd
}
