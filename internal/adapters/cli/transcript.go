package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/application"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
)

var (
	formatFlag    string
	outputFlag    string
	cutlistFlag   bool
	sentencesFlag string
)

// NewTranscriptCmd creates the transcript subcommand
func NewTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript <video-file>",
		Short: "Print the transcript without opening the player",
		Args:  cobra.ExactArgs(1),
		RunE:  runTranscript,
	}

	cmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, srt, json")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&cutlistFlag, "cutlist", false, "Emit an editing cut list instead of the transcript")
	cmd.Flags().StringVar(&sentencesFlag, "sentences", "", "Comma-separated sentence indices for the cut list")

	return cmd
}

func runTranscript(cmd *cobra.Command, args []string) error {
	app, err := appWithOverrides()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx := context.Background()
	res, err := app.SessionSvc.Open(ctx, args[0], application.OpenOptions{NoCache: noCacheFlag})
	if err != nil {
		return err
	}

	if cutlistFlag {
		return outputCutList(res)
	}

	var output string
	switch formatFlag {
	case "text":
		output = domain.TranscriptText(res.Sections)
	case "srt":
		output = domain.SRT(res.Sections, res.Duration)
	case "json":
		jsonBytes, err := json.MarshalIndent(domain.TranscriptPayload{Data: res.Sections}, "", "  ")
		if err != nil {
			return err
		}
		output = string(jsonBytes)
	default:
		return fmt.Errorf("unknown format: %s", formatFlag)
	}

	return writeOutput(output)
}

func outputCutList(res *application.OpenResult) error {
	selected, err := parseSentenceIndices(sentencesFlag)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return domain.ErrNoHighlights
	}

	list := domain.BuildCutList(res.Index, selected, res.VideoPath, res.Duration)
	jsonBytes, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(string(jsonBytes))
}

func parseSentenceIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid sentence index %q", part)
		}
		indices = append(indices, n)
	}
	return indices, nil
}

func writeOutput(output string) error {
	if outputFlag != "" {
		return os.WriteFile(outputFlag, []byte(output), 0644)
	}
	fmt.Println(output)
	return nil
}
