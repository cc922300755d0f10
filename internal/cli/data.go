package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
)

func (c *CLI) collegesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colleges",
		Short: "List known colleges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				colleges, err := store.Distances().Colleges(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(c.Out, styleTitle.Render(fmt.Sprintf("%d colleges", len(colleges))))
				for _, name := range colleges {
					fmt.Fprintln(c.Out, name)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a college everywhere it appears",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				if err := store.Colleges().Rename(cmd.Context(), args[0], args[1]); err != nil {
					return fmt.Errorf("rename %q: %w", args[0], err)
				}
				fmt.Fprintf(c.Out, "%s Renamed %s %s %s\n", styleSuccess.Render(iconSuccess), args[0], iconArrow, args[1])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <college>",
		Short: "Delete a college with its distances and souvenirs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				if err := store.Colleges().Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete %q: %w", args[0], err)
				}
				fmt.Fprintf(c.Out, "%s Deleted %s\n", styleSuccess.Render(iconSuccess), args[0])
				return nil
			})
		},
	})

	return cmd
}

func (c *CLI) distancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distances <college>",
		Short: "Show stored distances from a college, nearest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				distances, err := store.Distances().ListFrom(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderDistances(c.Out, args[0], distances)
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <start> <end> <miles>",
		Short: "Store the distance from start to end",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			miles, err := strconv.ParseFloat(args[2], 64)
			if err != nil || miles < 0 {
				return fmt.Errorf("invalid distance %q", args[2])
			}
			if args[0] == args[1] {
				return fmt.Errorf("start and end college must differ")
			}
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				return store.Distances().Upsert(cmd.Context(), &models.Distance{StartCollege: args[0], EndCollege: args[1], Miles: miles})
			})
		},
	})

	return cmd
}

func (c *CLI) souvenirsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "souvenirs <college>",
		Short: "List souvenirs sold at a college",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				souvenirs, err := store.Souvenirs().List(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderSouvenirs(c.Out, args[0], souvenirs)
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <college> <souvenir> <price>",
		Short: "Add a souvenir",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil || price < 0 {
				return fmt.Errorf("invalid price %q", args[2])
			}
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				return store.Souvenirs().Add(cmd.Context(), &models.Souvenir{College: args[0], Name: args[1], Price: price})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "price <college> <souvenir> <price>",
		Short: "Change a souvenir's price",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil || price < 0 {
				return fmt.Errorf("invalid price %q", args[2])
			}
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				return store.Souvenirs().UpdatePrice(cmd.Context(), args[0], args[1], price)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <college> <souvenir>",
		Short: "Remove a souvenir",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store database.DataStore) error {
				return store.Souvenirs().Delete(cmd.Context(), args[0], args[1])
			})
		},
	})

	return cmd
}
