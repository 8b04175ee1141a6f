package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/database"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(c.dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}

			c.log.Info().Str("path", c.dbPath).Int64("version", v).Msg("Database migrated")
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
}
