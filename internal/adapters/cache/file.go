// Package cache persists fetched transcripts between runs and keeps built
// indexes in memory.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// FileCache stores one transcript per key as a meta.json under baseDir.
type FileCache struct {
	fs      afero.Fs
	baseDir string
	ttl     time.Duration
}

// NewFileCache creates a file cache on the given filesystem. Tests pass an
// in-memory one.
func NewFileCache(fs afero.Fs, baseDir string, ttl time.Duration) *FileCache {
	return &FileCache{fs: fs, baseDir: baseDir, ttl: ttl}
}

type metaFile struct {
	Sections  []domain.SectionEntry `json:"sections"`
	Duration  float64               `json:"duration"`
	CreatedAt time.Time             `json:"created_at"`
	ExpiresAt time.Time             `json:"expires_at"`
}

func (c *FileCache) metaPath(key string) string {
	return filepath.Join(c.baseDir, key, "meta.json")
}

func (c *FileCache) Get(ctx context.Context, key string) (*ports.CachedTranscript, error) {
	data, err := afero.ReadFile(c.fs, c.metaPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var meta metaFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	if time.Now().After(meta.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}

	return &ports.CachedTranscript{
		Sections:  meta.Sections,
		Duration:  meta.Duration,
		CreatedAt: meta.CreatedAt,
		ExpiresAt: meta.ExpiresAt,
	}, nil
}

func (c *FileCache) Set(ctx context.Context, key string, item *ports.CachedTranscript) error {
	dir := filepath.Join(c.baseDir, key)
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	meta := metaFile{
		Sections:  item.Sections,
		Duration:  item.Duration,
		CreatedAt: item.CreatedAt,
		ExpiresAt: item.ExpiresAt,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	return afero.WriteFile(c.fs, c.metaPath(key), data, 0644)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	return c.fs.RemoveAll(filepath.Join(c.baseDir, key))
}

func (c *FileCache) CleanExpired(ctx context.Context) (int, error) {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cleaned := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := c.Get(ctx, entry.Name()); err == domain.ErrCacheExpired {
			if err := c.Delete(ctx, entry.Name()); err == nil {
				cleaned++
			}
		}
	}

	return cleaned, nil
}

func (c *FileCache) Clear(ctx context.Context) error {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			_ = c.fs.RemoveAll(filepath.Join(c.baseDir, entry.Name()))
		}
	}

	return nil
}

func (c *FileCache) Stats(ctx context.Context) (itemCount int, totalSize int64, err error) {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		itemCount++

		dirPath := filepath.Join(c.baseDir, entry.Name())
		_ = afero.Walk(c.fs, dirPath, func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				totalSize += info.Size()
			}
			return nil
		})
	}

	return itemCount, totalSize, nil
}

var _ ports.CacheStore = (*FileCache)(nil)
