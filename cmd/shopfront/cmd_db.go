package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/database/seeders"
	"github.com/shashiranjanraj/shopfront/pkg/auth"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/migration"
)

// withStore loads config, connects and hands the store to fn.
func withStore(ctx context.Context, fn func(*database.Store) error) error {
	if err := config.Load(); err != nil {
		return err
	}
	store, err := database.Connect(ctx, config.Snapshot())
	if err != nil {
		return err
	}
	defer store.Close(context.Background()) //nolint:errcheck
	return fn(store)
}

func authService(store *database.Store) *services.AuthService {
	return services.NewAuthService(repositories.NewUserRepository(store), auth.NewSigner(config.JWTSecret()))
}

func printList(cmd *cobra.Command, empty, verb string, names []string) {
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	for _, n := range names {
		fmt.Fprintf(out, "%s: %s\n", verb, n)
	}
}

// shopfront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *database.Store) error {
			ran, err := migration.New(s.DB()).Run(cmd.Context())
			printList(cmd, "Nothing to migrate.", "Migrated", ran)
			return err
		})
	},
}

// shopfront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *database.Store) error {
			reverted, err := migration.New(s.DB()).Rollback(cmd.Context())
			printList(cmd, "Nothing to roll back.", "Rolled back", reverted)
			return err
		})
	},
}

// shopfront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *database.Store) error {
			status, err := migration.New(s.DB()).Status(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RAN\tBATCH\tMIGRATION")
			for _, st := range status {
				ran, batch := "no", "-"
				if st.Ran {
					ran, batch = "yes", fmt.Sprint(st.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, st.Name)
			}
			return w.Flush()
		})
	},
}

var seedOnly []string

// shopfront seed [--only admin,catalog]
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *database.Store) error {
			return seeders.RunAll(cmd.Context(), seeders.Deps{Store: s, Auth: authService(s)}, seedOnly...)
		})
	},
}

func init() {
	seedCmd.Flags().StringSliceVar(&seedOnly, "only", nil, "run only these seeders ("+fmt.Sprint(seeders.Names())+")")
}
