// Package ffprobe reads media metadata by shelling out to ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/config"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// Prober implements ports.MediaProber using the ffprobe binary.
type Prober struct {
	binPath string
}

// NewProber creates a prober. An empty binPath means "find it".
func NewProber(binPath string) *Prober {
	return &Prober{binPath: binPath}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ffprobe.exe"
	}
	return "ffprobe"
}

func (p *Prober) findBinary() string {
	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

// GetBinaryPath returns the resolved ffprobe path, or "" when unavailable.
func (p *Prober) GetBinaryPath() string {
	if p.binPath != "" {
		return p.binPath
	}
	p.binPath = p.findBinary()
	return p.binPath
}

// IsAvailable checks whether ffprobe can be run.
func (p *Prober) IsAvailable() bool {
	return p.GetBinaryPath() != ""
}

// Probe reads duration and stream geometry from a media file.
func (p *Prober) Probe(ctx context.Context, path string) (*ports.MediaInfo, error) {
	binPath := p.GetBinaryPath()
	if binPath == "" {
		return nil, domain.ErrFFprobeMissing
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, path)
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	cmd := exec.CommandContext(ctx, binPath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProbeFailed, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProbeFailed, err)
	}

	var info struct {
		Format struct {
			Duration   string `json:"duration"`
			FormatName string `json:"format_name"`
		} `json:"format"`
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("%w: unparsable ffprobe output: %v", domain.ErrProbeFailed, err)
	}

	duration, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: no duration in ffprobe output", domain.ErrProbeFailed)
	}

	result := &ports.MediaInfo{
		DurationSeconds: duration,
		Format:          info.Format.FormatName,
	}
	for _, s := range info.Streams {
		if s.CodecType == "video" {
			result.Width = s.Width
			result.Height = s.Height
			break
		}
	}

	return result, nil
}

var _ ports.MediaProber = (*Prober)(nil)
