// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/cursor"
	"github.com/ideafork/ideafork-api/models"
)

// TokenCmd mints a development viewer token
func TokenCmd(cmd *cobra.Command, _ []string) error {
	userID, err := cmd.Flags().GetString("user")
	if err != nil {
		return fmt.Errorf("invalid user flag: %w", err)
	}
	tierName, err := cmd.Flags().GetString("tier")
	if err != nil {
		return fmt.Errorf("invalid tier flag: %w", err)
	}
	tier, err := auth.ParseTier(tierName)
	if err != nil {
		return err
	}

	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}
	if settings.ViewerTokenSecret == "" {
		return errors.New("VIEWER_TOKEN_SECRET required")
	}

	if userID == "" {
		userID = auth.NewID()
	}
	token, err := auth.IssueViewerToken(userID, tier, settings.ViewerTokenSecret)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// CursorDecodeCmd prints what a pagination cursor points at
func CursorDecodeCmd(cmd *cobra.Command, args []string) error {
	c, err := cursor.Decode(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sort:  %s\n", c.Sort)
	fmt.Fprintf(out, "value: %v\n", c.Value)
	fmt.Fprintf(out, "id:    %s\n", c.ID)

	// "new" cursors carry created_at in unix milliseconds
	if c.Sort == models.SortNew {
		if ms, err := c.Int64(); err == nil {
			at := time.UnixMilli(ms).UTC()
			fmt.Fprintf(out, "time:  %s (%s)\n", at.Format(time.RFC3339), humanize.Time(at))
		}
	}
	return nil
}

// InitTokenCommands registers token and cursor helpers
func InitTokenCommands(rootCmd *cobra.Command) error {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a viewer token for local testing",
		Args:  cobra.NoArgs,
		RunE:  TokenCmd,
	}
	tokenCmd.Flags().String("user", "", "User id to embed (random UUID when empty)")
	tokenCmd.Flags().String("tier", string(auth.TierFree), "Viewer tier: free or pro")
	rootCmd.AddCommand(tokenCmd)

	cursorCmd := &cobra.Command{
		Use:   "cursor",
		Short: "Inspect pagination cursors",
	}
	cursorCmd.AddCommand(&cobra.Command{
		Use:   "decode TOKEN",
		Short: "Decode a next_cursor value",
		Args:  cobra.ExactArgs(1),
		RunE:  CursorDecodeCmd,
	})
	rootCmd.AddCommand(cursorCmd)

	return nil
}
