package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/importer"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/service"
)

func newImportCmd(c *cli) *cobra.Command {
	var userID, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import stock transactions from a .csv or .xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := importer.ReadFile(filepath.Base(file), f)
			if err != nil {
				return err
			}

			db, err := c.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewTransactionService(repository.NewTransactionRepository(db), c.log)
			res, err := svc.ImportTransactions(cmd.Context(), userID, rows)

			out := cmd.OutOrStdout()
			for _, sk := range res.Skipped {
				fmt.Fprintf(out, "row %d skipped: %s\n", sk.Row, sk.Reason)
			}
			if errors.Is(err, apperrors.ErrNothingToImport) {
				return fmt.Errorf("%s: %w", file, err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "imported %d transactions for %s\n", res.Imported, userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owner of the imported transactions")
	cmd.Flags().StringVar(&file, "file", "", "spreadsheet to import")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
