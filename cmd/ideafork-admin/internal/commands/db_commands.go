// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ideafork/ideafork-api/db"
	"github.com/ideafork/ideafork-api/store"
)

// MigrateCmd creates any missing tables and indexes
func MigrateCmd(cmd *cobra.Command, _ []string) error {
	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	conn, err := openDatabase(ctx, settings)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (%s)\n", settings.DatabaseType)
	return nil
}

// SeedCmd creates the schema if needed and fills it with sample data
func SeedCmd(cmd *cobra.Command, _ []string) error {
	counts := SeedCounts{}
	var err error
	if counts.Posts, err = cmd.Flags().GetInt("posts"); err != nil {
		return fmt.Errorf("invalid posts flag: %w", err)
	}
	if counts.Briefs, err = cmd.Flags().GetInt("briefs"); err != nil {
		return fmt.Errorf("invalid briefs flag: %w", err)
	}
	if counts.Products, err = cmd.Flags().GetInt("products"); err != nil {
		return fmt.Errorf("invalid products flag: %w", err)
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return fmt.Errorf("invalid seed flag: %w", err)
	}
	if counts.Posts < 0 || counts.Briefs < 0 || counts.Products < 0 {
		return fmt.Errorf("counts must not be negative")
	}

	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	conn, err := openDatabase(ctx, settings)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

	start := time.Now()
	report, err := NewSeeder(store.New(conn), seed, start).Seed(ctx, counts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seeded %s posts (%s votes)\n", humanize.Comma(int64(report.Posts)), humanize.Comma(int64(report.Votes)))
	fmt.Fprintf(out, "Seeded %s briefs (%s complaints, %s ratings)\n",
		humanize.Comma(int64(report.Briefs)), humanize.Comma(int64(report.Complaints)), humanize.Comma(int64(report.Ratings)))
	fmt.Fprintf(out, "Seeded %s products\n", humanize.Comma(int64(report.Products)))
	fmt.Fprintf(out, "Done in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// InitDatabaseCommands registers migrate and seed
func InitDatabaseCommands(rootCmd *cobra.Command) error {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE:  MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with deterministic sample data",
		Args:  cobra.NoArgs,
		RunE:  SeedCmd,
	}
	seedCmd.Flags().Int("posts", 200, "Number of posts to create")
	seedCmd.Flags().Int("briefs", 50, "Number of briefs to create")
	seedCmd.Flags().Int("products", 40, "Number of products to create")
	seedCmd.Flags().Uint64("seed", 1, "Random seed; the same seed produces the same data")
	rootCmd.AddCommand(seedCmd)

	return nil
}
