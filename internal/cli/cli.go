// Package cli implements the tripplanner command-line interface.
//
// Commands read and write the same SQLite store as the HTTP server. The
// store path comes from --db, then the config file, then the default under
// the user's home directory.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/sqlite"
)

const appName = "tripplanner"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer

	dbPath     string
	configPath string
	config     *database.AppConfig
}

// New creates a CLI writing results to out and logs to logOut.
func New(out, logOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(logOut, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Out: out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Plan the shortest trip through a set of colleges",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetDefault(c.Logger)
			return c.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite database path (defaults to the config file value)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file path (defaults to ~/"+database.AppDirName+"/"+database.ConfigFileName+")")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.collegesCommand())
	root.AddCommand(c.distancesCommand())
	root.AddCommand(c.souvenirsCommand())
	root.AddCommand(c.importCommand())

	return root
}

func (c *CLI) loadConfig() error {
	var (
		config *database.AppConfig
		err    error
	)
	if c.configPath != "" {
		config, err = database.LoadConfigFrom(c.configPath)
	} else {
		config, err = database.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if c.dbPath != "" {
		config.DatabasePath = c.dbPath
	}
	c.config = config
	c.Logger.Debug("config loaded", "database", config.DatabasePath, "addr", config.ServerAddr)
	return nil
}

// withStore opens the store for the duration of fn
func (c *CLI) withStore(ctx context.Context, fn func(database.DataStore) error) error {
	store, err := sqlite.New(c.config.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	return fn(store)
}
