package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

// Mock implementations for testing

type mockProber struct {
	duration float64
	calls    int
}

func (m *mockProber) Probe(ctx context.Context, path string) (*ports.MediaInfo, error) {
	m.calls++
	return &ports.MediaInfo{DurationSeconds: m.duration}, nil
}

type mockSource struct {
	sections []domain.SectionEntry
	calls    int
}

func (m *mockSource) Fetch(ctx context.Context, duration float64) ([]domain.SectionEntry, error) {
	m.calls++
	return m.sections, nil
}

type mockCache struct {
	items map[string]*ports.CachedTranscript
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string]*ports.CachedTranscript)}
}

func (m *mockCache) Get(ctx context.Context, key string) (*ports.CachedTranscript, error) {
	if item, ok := m.items[key]; ok {
		return item, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, item *ports.CachedTranscript) error {
	m.items[key] = item
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.items, key)
	return nil
}

func (m *mockCache) CleanExpired(ctx context.Context) (int, error) { return 0, nil }
func (m *mockCache) Clear(ctx context.Context) error {
	m.items = make(map[string]*ports.CachedTranscript)
	return nil
}
func (m *mockCache) Stats(ctx context.Context) (int, int64, error) {
	return len(m.items), 0, nil
}

type mockIndexCache struct {
	items map[string]*domain.Index
	hits  int
}

func newMockIndexCache() *mockIndexCache {
	return &mockIndexCache{items: make(map[string]*domain.Index)}
}

func (m *mockIndexCache) Get(key string) (*domain.Index, bool) {
	idx, ok := m.items[key]
	if ok {
		m.hits++
	}
	return idx, ok
}

func (m *mockIndexCache) Add(key string, idx *domain.Index) {
	m.items[key] = idx
}

func testSections() []domain.SectionEntry {
	return []domain.SectionEntry{
		{
			Title: "Intro",
			Sentences: []domain.SentenceEntry{
				{Time: 0, Sentence: "Hello.", SentenceIndex: 0},
				{Time: 5, Sentence: "World.", SentenceIndex: 1},
			},
		},
	}
}

func writeTempVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("not a real video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSessionService_Open(t *testing.T) {
	prober := &mockProber{duration: 12}
	source := &mockSource{sections: testSections()}
	cache := newMockCache()
	svc := NewSessionService(prober, source, cache, nil, 24*time.Hour)

	path := writeTempVideo(t)
	res, err := svc.Open(context.Background(), path, OpenOptions{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if res.Duration != 12 {
		t.Errorf("Duration = %v, want 12", res.Duration)
	}
	if res.FromCache {
		t.Error("FromCache = true for a fresh open")
	}
	if len(res.Index.TimeCues) != 2 {
		t.Errorf("len(TimeCues) = %d, want 2", len(res.Index.TimeCues))
	}
	if len(cache.items) != 1 {
		t.Errorf("cache holds %d items after open, want 1", len(cache.items))
	}
}

func TestSessionService_OpenUsesCache(t *testing.T) {
	prober := &mockProber{duration: 12}
	source := &mockSource{sections: testSections()}
	cache := newMockCache()
	svc := NewSessionService(prober, source, cache, nil, 24*time.Hour)

	path := writeTempVideo(t)
	ctx := context.Background()
	if _, err := svc.Open(ctx, path, OpenOptions{}); err != nil {
		t.Fatalf("first Open() error = %v", err)
	}

	res, err := svc.Open(ctx, path, OpenOptions{})
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	if !res.FromCache {
		t.Error("second open did not come from cache")
	}
	if prober.calls != 1 || source.calls != 1 {
		t.Errorf("prober/source called %d/%d times, want 1/1", prober.calls, source.calls)
	}
}

func TestSessionService_OpenNoCache(t *testing.T) {
	prober := &mockProber{duration: 12}
	source := &mockSource{sections: testSections()}
	cache := newMockCache()
	svc := NewSessionService(prober, source, cache, nil, 24*time.Hour)

	path := writeTempVideo(t)
	ctx := context.Background()
	svc.Open(ctx, path, OpenOptions{})

	res, err := svc.Open(ctx, path, OpenOptions{NoCache: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if res.FromCache {
		t.Error("NoCache open still hit the cache")
	}
	if source.calls != 2 {
		t.Errorf("source called %d times, want 2", source.calls)
	}
}

func TestSessionService_OpenMissingFile(t *testing.T) {
	svc := NewSessionService(&mockProber{}, &mockSource{}, nil, nil, time.Hour)

	_, err := svc.Open(context.Background(), "/does/not/exist.mp4", OpenOptions{})
	if err == nil {
		t.Fatal("Open() on missing file succeeded")
	}
}

func TestSessionService_IndexCacheReuse(t *testing.T) {
	prober := &mockProber{duration: 12}
	source := &mockSource{sections: testSections()}
	indexes := newMockIndexCache()
	svc := NewSessionService(prober, source, nil, indexes, time.Hour)

	path := writeTempVideo(t)
	ctx := context.Background()
	a, _ := svc.Open(ctx, path, OpenOptions{})
	b, _ := svc.Open(ctx, path, OpenOptions{})

	if indexes.hits != 1 {
		t.Errorf("index cache hits = %d, want 1", indexes.hits)
	}
	if a.Index != b.Index {
		t.Error("identical payloads did not share one index")
	}
}

func TestSessionService_LoadInto(t *testing.T) {
	prober := &mockProber{duration: 12}
	source := &mockSource{sections: testSections()}
	svc := NewSessionService(prober, source, nil, nil, time.Hour)

	path := writeTempVideo(t)
	res, err := svc.Open(context.Background(), path, OpenOptions{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	st := store.New()
	svc.LoadInto(st, res)

	snap := st.Snapshot()
	if snap.Duration != 12 {
		t.Errorf("store Duration = %v, want 12", snap.Duration)
	}
	if len(snap.Index.DataHash) != 2 {
		t.Errorf("store DataHash has %d entries, want 2", len(snap.Index.DataHash))
	}
}
