package ports

import (
	"context"
	"time"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
)

// CachedTranscript is a fetched transcript stored alongside the probed
// duration it was generated for.
type CachedTranscript struct {
	Sections  []domain.SectionEntry
	Duration  float64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// CacheStore handles persistent caching of fetched transcripts, keyed by
// video identity.
type CacheStore interface {
	// Get retrieves a cached transcript, or domain.ErrCacheMiss /
	// domain.ErrCacheExpired.
	Get(ctx context.Context, key string) (*CachedTranscript, error)

	// Set stores a transcript under the given key.
	Set(ctx context.Context, key string, item *CachedTranscript) error

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// CleanExpired removes all expired entries and returns the count removed.
	CleanExpired(ctx context.Context) (int, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Stats returns entry count and total size in bytes.
	Stats(ctx context.Context) (itemCount int, totalSize int64, err error)
}

// IndexCache keeps built lookup tables in memory so reopening the same
// transcript skips re-indexing. Cached indexes are immutable and safe to
// share.
type IndexCache interface {
	Get(key string) (*domain.Index, bool)
	Add(key string, idx *domain.Index)
}
