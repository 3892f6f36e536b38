package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// IndexCache is a bounded in-memory LRU of built transcript indexes.
type IndexCache struct {
	lru *lru.Cache[string, *domain.Index]
}

// NewIndexCache creates an index cache holding up to size entries.
func NewIndexCache(size int) (*IndexCache, error) {
	c, err := lru.New[string, *domain.Index](size)
	if err != nil {
		return nil, err
	}
	return &IndexCache{lru: c}, nil
}

func (c *IndexCache) Get(key string) (*domain.Index, bool) {
	return c.lru.Get(key)
}

func (c *IndexCache) Add(key string, idx *domain.Index) {
	c.lru.Add(key, idx)
}

var _ ports.IndexCache = (*IndexCache)(nil)
