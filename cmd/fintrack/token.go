package main

import (
	"fmt"

	"github.com/fernet/fernet-go"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Personal-Finance-Tracker-Backend/internal/api/middleware"
)

func newTokenCmd(c *cli) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user, signed with AUTH_TOKEN_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := c.cfg.Auth.Keys()
			if err != nil {
				return err
			}

			// The first key signs; the others only verify.
			tok, err := middleware.IssueToken(userID, keys[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user the token identifies")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a fresh value for AUTH_TOKEN_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var k fernet.Key
			if err := k.Generate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), k.Encode())
			return nil
		},
	}
}
