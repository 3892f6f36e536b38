package application

import (
	"context"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// CacheSummary describes what the transcript cache currently holds.
type CacheSummary struct {
	Entries   int
	TotalSize int64
}

// CacheService exposes transcript cache management to the CLI.
type CacheService struct {
	cache ports.CacheStore
}

// NewCacheService creates a cache service.
func NewCacheService(cache ports.CacheStore) *CacheService {
	return &CacheService{cache: cache}
}

// Summary reports entry count and on-disk size.
func (s *CacheService) Summary(ctx context.Context) (*CacheSummary, error) {
	count, size, err := s.cache.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &CacheSummary{Entries: count, TotalSize: size}, nil
}

// CleanExpired drops expired transcripts and returns how many were removed.
func (s *CacheService) CleanExpired(ctx context.Context) (int, error) {
	return s.cache.CleanExpired(ctx)
}

// Clear drops every cached transcript.
func (s *CacheService) Clear(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
