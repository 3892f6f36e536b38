package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/fetch"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/config"
)

var fetchDirFlag string

// NewFetchCmd creates the fetch subcommand
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a video for local playback",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}

	cmd.Flags().StringVar(&fetchDirFlag, "dir", "", "Destination directory (default: app downloads dir)")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := config.EnsureDirs(); err != nil {
		return err
	}

	destDir := fetchDirFlag
	if destDir == "" {
		destDir = config.DownloadsDir()
	}

	progress := func(percent float64, filename string) {
		if quietFlag {
			return
		}
		fmt.Printf("\rDownloading... %.1f%%", percent)
	}

	dl := fetch.NewDownloader(progress)
	path, err := dl.Fetch(context.Background(), args[0], destDir)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if !quietFlag {
		fmt.Println()
	}
	fmt.Printf("Saved to %s\n", path)
	return nil
}
