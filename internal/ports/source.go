package ports

import (
	"context"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
)

// TranscriptSource produces the sectioned transcript for a video of the given
// duration. The sections come back in playback order with globally increasing
// sentence indices.
type TranscriptSource interface {
	Fetch(ctx context.Context, duration float64) ([]domain.SectionEntry, error)
}

// MediaInfo holds the metadata read from a local media file.
type MediaInfo struct {
	DurationSeconds float64
	Format          string
	Width           int
	Height          int
}

// MediaProber reads media metadata from a local file.
type MediaProber interface {
	Probe(ctx context.Context, path string) (*MediaInfo, error)
}

// VideoFetcher downloads a remote video to local storage and returns the
// downloaded file path.
type VideoFetcher interface {
	Fetch(ctx context.Context, url string, destDir string) (string, error)
}
