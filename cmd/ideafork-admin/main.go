// Package main is the entry point for the ideafork-admin operator CLI.
// It registers the database and token command groups and executes the root command.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ideafork/ideafork-api/cmd/ideafork-admin/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "ideafork-admin",
		Short: "Operator tooling for the Idea Fork API",
		Long: `ideafork-admin manages the Idea Fork database and development credentials.

Connection settings are read from .env and the environment:
- DATABASE_URL
- DATABASE_TYPE (sqlite or postgres, default sqlite)
- VIEWER_TOKEN_SECRET (token command only)
Flags override the environment.`,
		SilenceUsage: true,
	}

	commands.AddConnectionFlags(rootCmd)

	// Initialize all command groups BEFORE executing
	if err := commands.InitDatabaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize database commands: %w", err)
	}
	if err := commands.InitTokenCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize token commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
