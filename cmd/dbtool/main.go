package main

import (
	"context"
	"database/sql"
	"fmt"
	"hub-routing-service/internal/adapters/repositories"
	"hub-routing-service/internal/config"
	"hub-routing-service/internal/geo"
	"hub-routing-service/internal/platform/db"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dbtool",
		Short:        "Manage the hub routing database",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(hubsCmd())
	rootCmd.AddCommand(edgesCmd())
	return rootCmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, _ string) error {
				log.Println("Initializing database schema...")
				if err := repositories.InitSchema(ctx, conn); err != nil {
					return err
				}
				log.Println("Schema ready.")
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [seed-file]",
		Short: "Load hubs and connections from a JSON seed file (defaults to SEED_PATH)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Get("SEED_PATH", "data/seeds/hubs.json")
			if len(args) == 1 {
				path = args[0]
			}
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, driver string) error {
				if err := repositories.InitSchema(ctx, conn); err != nil {
					return err
				}
				log.Printf("Seeding database from %s...", path)
				if err := repositories.SeedFromJSON(ctx, conn, driver, path); err != nil {
					return err
				}
				log.Println("Seeding complete.")
				return nil
			})
		},
	}
}

func hubsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hubs",
		Short: "List stored hubs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, driver string) error {
				hubs, err := repositories.NewSQLHubRepository(conn, driver, zap.NewNop()).ListHubs(ctx)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTYPE\tLOCATION\tADDRESS")
				for _, h := range hubs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.ID, h.Type, geo.FormatPoint(h.Location), h.Address)
				}
				return tw.Flush()
			})
		},
	}
}

func edgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edges [hub-id]",
		Short: "List the outgoing connections of a hub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("edges: invalid hub id %q: %w", args[0], err)
			}
			return withDB(cmd.Context(), func(ctx context.Context, conn *sql.DB, driver string) error {
				repo := repositories.NewSQLHubRepository(conn, driver, zap.NewNop())
				if _, err := repo.GetHub(ctx, id); err != nil {
					return err
				}
				edges, err := repo.ListEdgesFrom(ctx, id)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTO\tWEIGHT")
				for _, e := range edges {
					weight := "-"
					if e.Weight != nil {
						weight = strconv.FormatFloat(*e.Weight, 'f', -1, 64)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.ToHubID, weight)
				}
				return tw.Flush()
			})
		},
	}
}

// withDB opens the configured database for the duration of fn.
func withDB(ctx context.Context, fn func(ctx context.Context, conn *sql.DB, driver string) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, conn, cfg.DBDriver)
}
