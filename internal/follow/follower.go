// Package follow binds playback position to the transcript view: it derives
// the active sentence from the current second and fires a scroll-into-view
// effect exactly once per change.
package follow

import (
	"sync"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

// Follower tracks the active sentence. Seconds with no timeline entry keep
// the previous active sentence; repeated notifications of the same sentence
// do not re-trigger the scroll effect.
type Follower struct {
	mu sync.Mutex

	scroller ports.Scroller

	active    domain.SentenceRecord
	hasActive bool

	remove func()
}

// New creates a follower subscribed to the store. Call Close when done.
func New(st *store.Store, scroller ports.Scroller) *Follower {
	f := &Follower{scroller: scroller}
	f.remove = st.Subscribe(f.onChange)

	// Pick up whatever is already playing.
	f.onChange(st.Snapshot())
	return f
}

// Active returns the current active sentence, if any.
func (f *Follower) Active() (domain.SentenceRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.hasActive
}

// ActiveText returns the active sentence's text, or "" when none is active.
// This is the subtitle overlay line.
func (f *Follower) ActiveText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasActive {
		return ""
	}
	return f.active.Sentence
}

// Close removes the store subscription. Safe to call more than once.
func (f *Follower) Close() {
	f.mu.Lock()
	remove := f.remove
	f.remove = nil
	f.mu.Unlock()

	if remove != nil {
		remove()
	}
}

func (f *Follower) onChange(snap store.Snapshot) {
	rec, ok := snap.ActiveSentence()
	if !ok {
		// No active sentence for this second; keep the previous one unless
		// the transcript itself went away.
		if len(snap.Index.DataHash) == 0 {
			f.mu.Lock()
			f.hasActive = false
			f.active = domain.SentenceRecord{}
			f.mu.Unlock()
		}
		return
	}

	f.mu.Lock()
	if f.hasActive && f.active.SentenceIndex == rec.SentenceIndex {
		f.mu.Unlock()
		return
	}
	f.active = rec
	f.hasActive = true
	scroller := f.scroller
	f.mu.Unlock()

	if scroller != nil {
		scroller.ScrollTo(rec.SentenceIndex)
	}
}
