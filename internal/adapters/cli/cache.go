package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/cli/tui"
)

var clearAllFlag bool

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached transcripts",
		RunE:  runCacheStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries",
		RunE:  runCacheClear,
	}
	clearCmd.Flags().BoolVar(&clearAllFlag, "all", false, "Clear all cache entries")

	cmd.AddCommand(clearCmd)

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	ctx := context.Background()
	summary, err := app.CacheSvc.Summary(ctx)
	if err != nil {
		return err
	}

	if summary.Entries == 0 {
		fmt.Println("Transcript cache is empty")
		return nil
	}
	fmt.Printf("Transcript cache: %d entries, %s on disk (ttl %s)\n",
		summary.Entries, tui.FormatSize(summary.TotalSize), app.Config.Cache.TTL)

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if clearAllFlag {
		if err := app.CacheSvc.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Transcript cache cleared")
	} else {
		cleaned, err := app.CacheSvc.CleanExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d expired transcripts\n", cleaned)
	}

	return nil
}
