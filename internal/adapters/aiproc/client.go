// Package aiproc talks to the AI processing backend that turns a video
// duration into a sectioned, time-tagged transcript.
package aiproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// Client fetches transcripts from a remote AI processing endpoint. The
// request carries the probed duration; the response is a TranscriptPayload.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch posts the duration and decodes the transcript sections.
func (c *Client) Fetch(ctx context.Context, duration float64) ([]domain.SectionEntry, error) {
	body, err := json.Marshal(struct {
		Duration float64 `json:"duration"`
	}{duration})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrSourceUnavailable, c.endpoint, resp.Status)
	}

	var payload domain.TranscriptPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse transcript response: %w", err)
	}

	return payload.Data, nil
}

var _ ports.TranscriptSource = (*Client)(nil)
