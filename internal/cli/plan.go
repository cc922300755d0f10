package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/planner"
)

type planOptions struct {
	strategy    string
	format      string
	all         bool
	maxColleges int
}

func (c *CLI) planCommand() *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan <start> [college...]",
		Short: "Order colleges into the shortest trip from the first one",
		Long: `Plan the shortest open trip that starts at the first college and visits
each listed college exactly once. With --all every known college is visited.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", string(planner.StrategyExact), "exact, heuristic or auto")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&opts.all, "all", false, "visit every known college")
	cmd.Flags().IntVar(&opts.maxColleges, "max-colleges", 0, "largest trip solved exactly (0 uses the config value)")

	return cmd
}

func (c *CLI) runPlan(cmd *cobra.Command, args []string, opts planOptions) error {
	strategy, err := planner.ParseStrategy(opts.strategy)
	if err != nil {
		return err
	}
	switch opts.format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	maxExact := opts.maxColleges
	if maxExact == 0 {
		maxExact = c.config.MaxExactColleges
	}

	return c.withStore(cmd.Context(), func(store database.DataStore) error {
		colleges := args
		if opts.all {
			known, err := store.Distances().Colleges(cmd.Context())
			if err != nil {
				return err
			}
			colleges = []string{args[0]}
			for _, name := range known {
				if name != args[0] {
					colleges = append(colleges, name)
				}
			}
		}

		start := time.Now()
		p := planner.New(store.Distances(), planner.Config{MaxExactColleges: maxExact})
		trip, err := p.PlanTrip(cmd.Context(), &planner.TripRequest{Colleges: colleges, Strategy: strategy})
		if err != nil {
			return err
		}
		c.Logger.Infof("Planned %d colleges (%s)", len(trip.Path), time.Since(start).Round(time.Millisecond))

		switch opts.format {
		case "json":
			enc := json.NewEncoder(c.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(trip)
		case "yaml":
			enc := yaml.NewEncoder(c.Out)
			enc.SetIndent(2)
			if err := enc.Encode(trip); err != nil {
				return err
			}
			return enc.Close()
		}

		renderTrip(c.Out, trip)
		return nil
	})
}
