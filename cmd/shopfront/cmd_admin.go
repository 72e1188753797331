package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopfront/pkg/database"
)

var adminFlags struct {
	email    string
	password string
	name     string
}

// shopfront make:admin --email a@b.c --password secret
var makeAdminCmd = &cobra.Command{
	Use:   "make:admin",
	Short: "Create an administrator or promote an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminFlags.email == "" {
			return errors.New("--email is required")
		}
		return withStore(cmd.Context(), func(s *database.Store) error {
			u, created, err := authService(s).EnsureAdmin(cmd.Context(), adminFlags.name, adminFlags.email, adminFlags.password)
			if err != nil {
				return err
			}
			verb := "Promoted"
			if created {
				verb = "Created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s admin %s (%s)\n", verb, u.Email, u.ID.Hex())
			return nil
		})
	},
}

func init() {
	f := makeAdminCmd.Flags()
	f.StringVar(&adminFlags.email, "email", "", "admin email")
	f.StringVar(&adminFlags.password, "password", "", "password for a new account (min 6 characters)")
	f.StringVar(&adminFlags.name, "name", "Admin", "display name for a new account")
}
