package application

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

// OpenOptions configures opening a video.
type OpenOptions struct {
	NoCache bool
}

// OpenResult is everything needed to start a player session on a video.
type OpenResult struct {
	VideoPath string
	Duration  float64
	Sections  []domain.SectionEntry
	Index     *domain.Index
	FromCache bool
}

// SessionService orchestrates the ingestion pipeline: probe the video's
// duration, obtain the sectioned transcript, build the lookup tables, and
// hand the result to a store.
type SessionService struct {
	prober  ports.MediaProber
	source  ports.TranscriptSource
	cache   ports.CacheStore
	indexes ports.IndexCache
	ttl     time.Duration
}

// NewSessionService creates a session service. cache and indexes may be nil
// to disable the respective layer.
func NewSessionService(
	prober ports.MediaProber,
	source ports.TranscriptSource,
	cache ports.CacheStore,
	indexes ports.IndexCache,
	ttl time.Duration,
) *SessionService {
	return &SessionService{
		prober:  prober,
		source:  source,
		cache:   cache,
		indexes: indexes,
		ttl:     ttl,
	}
}

// Open processes a local video file into an OpenResult. Cached transcripts
// are keyed by the file's identity, so edits to the file invalidate them.
func (s *SessionService) Open(ctx context.Context, videoPath string, opts OpenOptions) (*OpenResult, error) {
	fi, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, videoPath)
	}
	key := videoKey(videoPath, fi.Size(), fi.ModTime())

	var sections []domain.SectionEntry
	var duration float64
	fromCache := false

	if !opts.NoCache && s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			sections = cached.Sections
			duration = cached.Duration
			fromCache = true
		}
	}

	if !fromCache {
		info, err := s.prober.Probe(ctx, videoPath)
		if err != nil {
			return nil, err
		}
		duration = info.DurationSeconds

		sections, err = s.source.Fetch(ctx, duration)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			now := time.Now()
			// Cache failures are non-fatal.
			_ = s.cache.Set(ctx, key, &ports.CachedTranscript{
				Sections:  sections,
				Duration:  duration,
				CreatedAt: now,
				ExpiresAt: now.Add(s.ttl),
			})
		}
	}

	return &OpenResult{
		VideoPath: videoPath,
		Duration:  duration,
		Sections:  sections,
		Index:     s.indexFor(sections, duration),
		FromCache: fromCache,
	}, nil
}

// LoadInto installs an open result into a store as one atomic state change.
func (s *SessionService) LoadInto(st *store.Store, res *OpenResult) {
	st.InstallIndex(res.Sections, res.Duration, res.Index)
}

// indexFor builds the lookup tables, going through the in-memory index cache
// when one is configured.
func (s *SessionService) indexFor(sections []domain.SectionEntry, duration float64) *domain.Index {
	if s.indexes == nil {
		return domain.BuildIndex(sections, duration)
	}

	key := payloadKey(sections, duration)
	if idx, ok := s.indexes.Get(key); ok {
		return idx
	}
	idx := domain.BuildIndex(sections, duration)
	s.indexes.Add(key, idx)
	return idx
}

// videoKey derives a cache key from a file's identity.
func videoKey(path string, size int64, mtime time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, size, mtime.UnixNano())))
	return fmt.Sprintf("%x", sum[:12])
}

// payloadKey derives an index-cache key from the transcript content itself,
// so identical payloads share one index regardless of which file they came
// from.
func payloadKey(sections []domain.SectionEntry, duration float64) string {
	raw, err := json.Marshal(struct {
		Sections []domain.SectionEntry `json:"sections"`
		Duration float64               `json:"duration"`
	}{sections, duration})
	if err != nil {
		return fmt.Sprintf("unhashable-%d-%f", domain.SentenceCount(sections), duration)
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%x", sum[:12])
}
