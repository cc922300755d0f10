package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/importer"
)

func (c *CLI) importCommand() *cobra.Command {
	var (
		replace bool
		header  bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load distances or souvenirs from CSV",
	}
	cmd.PersistentFlags().BoolVar(&replace, "replace", false, "overwrite rows that already exist")
	cmd.PersistentFlags().BoolVar(&header, "header", false, "skip the first row")

	options := func() importer.Options {
		opts := importer.Options{HasHeader: header, Mode: database.BatchIgnore}
		if replace {
			opts.Mode = database.BatchReplace
		}
		return opts
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "distances <file.csv>",
		Short: "Import start,end,distance rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				report, err := importer.ImportDistances(cmd.Context(), store, f, options())
				if err != nil {
					return err
				}
				renderReport(c.Out, "distances", report)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "souvenirs <file.csv>",
		Short: "Import college,souvenir,price rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				report, err := importer.ImportSouvenirs(cmd.Context(), store, f, options())
				if err != nil {
					return err
				}
				renderReport(c.Out, "souvenirs", report)
				return nil
			})
		},
	})

	return cmd
}
