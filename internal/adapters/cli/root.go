package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/aiproc"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/cli/tui"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/simplayer"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/application"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/config"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/playback"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

var (
	// Global flags
	sourceFlag   string
	cacheTTLFlag string
	noCacheFlag  bool
	quietFlag    bool
	rateFlag     float64
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vht [video-file]",
		Short: "Watch a video with a clickable, auto-highlighting transcript",
		Long: `vht plays a video alongside its transcript in the terminal.

Sentences in the transcript can be marked as highlights; highlight
playback then jumps the video across the selected sentences only.
The transcript follows the playhead, and jumping to any sentence is
one keypress away.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRoot,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "AI processing endpoint URL (default: built-in generator)")
	rootCmd.PersistentFlags().StringVar(&cacheTTLFlag, "cache-ttl", "", "Cache lifetime (e.g., 24h, 7d)")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "Skip cache")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	rootCmd.Flags().Float64Var(&rateFlag, "rate", 0, "Playback speed (default from config)")

	// Add subcommands
	rootCmd.AddCommand(NewTranscriptCmd())
	rootCmd.AddCommand(NewFetchCmd())
	rootCmd.AddCommand(NewCacheCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return runPlayer(args[0])
}

// appWithOverrides returns the app with command-line flag overrides applied.
func appWithOverrides() (*App, error) {
	app, err := GetApp()
	if err != nil {
		return nil, err
	}

	rebuild := false
	if sourceFlag != "" {
		app.Source = aiproc.NewClient(sourceFlag)
		rebuild = true
	}
	if cacheTTLFlag != "" {
		ttl, err := config.ParseDuration(cacheTTLFlag)
		if err != nil {
			return nil, err
		}
		app.TTL = ttl
		rebuild = true
	}
	if rebuild {
		app.rebuildSession()
	}
	return app, nil
}

func runPlayer(videoPath string) error {
	app, err := appWithOverrides()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	res, err := app.SessionSvc.Open(ctx, videoPath, application.OpenOptions{NoCache: noCacheFlag})
	if err != nil {
		return err
	}
	if !quietFlag && res.FromCache {
		fmt.Fprintln(os.Stderr, "Using cached transcript")
	}

	rate := app.Config.Player.Rate
	if rateFlag > 0 {
		rate = rateFlag
	}

	st := store.New()
	app.SessionSvc.LoadInto(st, res)

	player := simplayer.New(res.Duration,
		simplayer.WithRate(rate),
		simplayer.WithInterval(app.Config.GetTickInterval()),
	)
	defer player.Close()

	release := application.BindPlayer(st, player)
	defer release()

	ctrl := playback.NewController(st, player)
	defer ctrl.Close()

	return tui.RunPlayer(st, ctrl, player, res.VideoPath)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
