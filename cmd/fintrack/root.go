package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/database"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/version"
)

// cli carries what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type cli struct {
	cfg    *config.Config
	log    zerolog.Logger
	dbPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "fintrack",
		Version:       version.Version,
		Short:         "Personal finance tracker maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			if c.dbPath == "" {
				c.dbPath = cfg.Database.Path
			}
			c.log = logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Pretty: true}, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite database path (default DB_PATH)")

	root.AddCommand(
		newMigrateCmd(c),
		newImportCmd(c),
		newReportCmd(c),
		newTokenCmd(c),
		newKeygenCmd(),
	)

	return root
}

// openDB opens the database and brings the schema up to date.
func (c *cli) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.Open(c.dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", c.dbPath, err)
	}
	return db, nil
}
