// Package fetch downloads remote videos so they can be opened like local
// files.
package fetch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// ProgressFunc reports download progress as a percentage in [0, 100].
type ProgressFunc func(percent float64, filename string)

// Downloader implements ports.VideoFetcher with yt-dlp, installing the
// binary on first use.
type Downloader struct {
	progress ProgressFunc
}

// NewDownloader creates a downloader. progress may be nil.
func NewDownloader(progress ProgressFunc) *Downloader {
	return &Downloader{progress: progress}
}

// Fetch downloads the video behind url into destDir as an mp4 and returns
// the downloaded file path.
func (d *Downloader) Fetch(ctx context.Context, url string, destDir string) (string, error) {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return "", fmt.Errorf("failed to install yt-dlp: %w", err)
	}

	outputTemplate := filepath.Join(destDir, "%(id)s.%(ext)s")

	var downloadedPath string
	dl := ytdlp.New().
		FormatSort("res,ext:mp4:m4a").
		RecodeVideo("mp4").
		NoOverwrites().
		Output(outputTemplate).
		ProgressFunc(250*time.Millisecond, func(prog ytdlp.ProgressUpdate) {
			if d.progress != nil {
				d.progress(prog.Percent(), prog.Filename)
			}
			if prog.Status == ytdlp.ProgressStatusFinished && prog.Filename != "" {
				downloadedPath = prog.Filename
			}
		})

	if _, err := dl.Run(ctx, url); err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	if downloadedPath == "" {
		// Fall back to whatever landed in the destination directory.
		matches, _ := filepath.Glob(filepath.Join(destDir, "*.mp4"))
		if len(matches) == 1 {
			return matches[0], nil
		}
		return "", fmt.Errorf("could not determine downloaded file in %s", destDir)
	}

	return downloadedPath, nil
}

var _ ports.VideoFetcher = (*Downloader)(nil)
