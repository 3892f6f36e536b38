// Package store holds the authoritative playback and transcript state and
// notifies subscribers synchronously on every mutation.
package store

import (
	"math"
	"sort"
	"sync"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
)

// JumpRequest signals that something wants the media element moved. Count
// increments on every request, so seeking to the same time twice is still
// observable as two events.
type JumpRequest struct {
	Time  float64
	Count int
}

// Snapshot is a consistent read of the whole store state. Sections and Index
// are immutable after construction and shared; Highlights is a sorted copy.
type Snapshot struct {
	Sections      []domain.SectionEntry
	Index         *domain.Index
	Duration      float64
	CurrentTime   float64
	CurrentSecond int
	Jump          JumpRequest
	Highlights    []int
}

// HasHighlights reports whether any sentence is selected.
func (s Snapshot) HasHighlights() bool {
	return len(s.Highlights) > 0
}

// ActiveSentence returns the sentence active at the snapshot's current
// second, if any.
func (s Snapshot) ActiveSentence() (domain.SentenceRecord, bool) {
	return s.Index.SentenceAt(s.CurrentSecond)
}

// Store is the single source of truth for playback position, derived index
// tables, and highlight selection. All mutations are atomic with respect to
// observers.
type Store struct {
	mu sync.Mutex

	sections      []domain.SectionEntry
	index         *domain.Index
	duration      float64
	currentTime   float64
	currentSecond int
	jump          JumpRequest
	highlights    map[int]struct{}

	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// New creates an empty store. Lookups against it behave as "no transcript":
// empty tables, zero time, no selection.
func New() *Store {
	return &Store{
		index:       domain.BuildIndex(nil, 0),
		highlights:  make(map[int]struct{}),
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Subscribe registers a callback invoked synchronously after every mutation.
// The returned function removes the registration and is safe to call more
// than once.
func (s *Store) Subscribe(fn func(Snapshot)) (remove func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Snapshot returns a consistent view of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	selected := make([]int, 0, len(s.highlights))
	for si := range s.highlights {
		selected = append(selected, si)
	}
	sort.Ints(selected)

	return Snapshot{
		Sections:      s.sections,
		Index:         s.index,
		Duration:      s.duration,
		CurrentTime:   s.currentTime,
		CurrentSecond: s.currentSecond,
		Jump:          s.jump,
		Highlights:    selected,
	}
}

// notifyLocked snapshots state and releases the lock before invoking
// subscribers, so callbacks can read the store without deadlocking.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// LoadTranscript replaces the transcript and all derived tables, resetting
// playback position and highlight selection. Subscribers observe a single
// state change. An empty section list is legal and yields empty tables.
func (s *Store) LoadTranscript(sections []domain.SectionEntry, duration float64) {
	if math.IsNaN(duration) || duration < 0 {
		duration = 0
	}
	s.InstallIndex(sections, duration, domain.BuildIndex(sections, duration))
}

// InstallIndex is LoadTranscript with a prebuilt index, used when the index
// comes out of a cache. The index must correspond to the given sections and
// duration.
func (s *Store) InstallIndex(sections []domain.SectionEntry, duration float64, idx *domain.Index) {
	s.mu.Lock()
	s.sections = sections
	s.index = idx
	s.duration = duration
	s.currentTime = 0
	s.currentSecond = 0
	s.jump = JumpRequest{}
	s.highlights = make(map[int]struct{})
	s.notifyLocked()
}

// Reset discards the transcript and returns the store to its initial state.
func (s *Store) Reset() {
	s.InstallIndex(nil, 0, domain.BuildIndex(nil, 0))
}

// SetCurrentTime records a playback position reported by the media element.
// It never moves the media itself. Negative or NaN times are rejected.
func (s *Store) SetCurrentTime(t float64) bool {
	if math.IsNaN(t) || t < 0 {
		return false
	}

	s.mu.Lock()
	s.currentTime = t
	s.currentSecond = int(math.Floor(t))
	s.notifyLocked()
	return true
}

// RequestSeek records a new playback position and signals observers that the
// media element must be moved there. Negative or NaN times are rejected.
func (s *Store) RequestSeek(t float64) bool {
	if math.IsNaN(t) || t < 0 {
		return false
	}

	s.mu.Lock()
	s.currentTime = t
	s.currentSecond = int(math.Floor(t))
	s.jump.Time = t
	s.jump.Count++
	s.notifyLocked()
	return true
}

// ToggleHighlight adds the sentence to the highlight selection if absent and
// removes it if present. Indices unknown to the loaded transcript are
// rejected.
func (s *Store) ToggleHighlight(sentenceIndex int) bool {
	s.mu.Lock()
	if _, known := s.index.DataHash[sentenceIndex]; !known {
		s.mu.Unlock()
		return false
	}

	if _, ok := s.highlights[sentenceIndex]; ok {
		delete(s.highlights, sentenceIndex)
	} else {
		s.highlights[sentenceIndex] = struct{}{}
	}
	s.notifyLocked()
	return true
}
