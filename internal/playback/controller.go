// Package playback drives the media element through the ordered union of
// highlighted sentence spans, one segment at a time.
package playback

import (
	"sync"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

// State is the controller's externally observable state.
type State int

const (
	// Idle means no highlight session is active.
	Idle State = iota
	// Playing means a session is driving the media through its segments.
	Playing
	// Stopped means the last session ran out of segments. Equivalent to Idle
	// for re-entry purposes.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Controller plays back the highlighted sentence spans in start order.
// Segment transitions are monotonic within a session; a session never
// revisits an earlier segment. Any external seek or selection change observed
// through the store immediately ends the session.
type Controller struct {
	mu sync.Mutex

	store  *store.Store
	player ports.MediaPlayer

	state    State
	segments []domain.HighlightSegment
	segIdx   int

	// session context used to detect external interference
	jumpCount int
	selection []int

	removeTime  func()
	removeStore func()
}

// NewController creates a controller bound to a store and a media player.
func NewController(st *store.Store, player ports.MediaPlayer) *Controller {
	return &Controller{
		store:  st,
		player: player,
		state:  Idle,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins a highlight playback session. It recomputes the segment list
// from the current selection, picks the segment containing the current
// playback time (or the first segment when the time precedes them all), seeks
// to its start, and plays. With no usable segments Start is a no-op returning
// domain.ErrNoHighlights and the state stays Idle.
func (c *Controller) Start() error {
	snap := c.store.Snapshot()
	if !snap.HasHighlights() {
		return domain.ErrNoHighlights
	}
	segments := domain.SegmentsFor(snap.Index, snap.Highlights)
	if len(segments) == 0 {
		// Selection referenced sentences with no playable cue.
		return domain.ErrNoHighlights
	}

	c.mu.Lock()
	c.teardownLocked()

	c.segments = segments
	c.segIdx = activeSegment(c.player.Position(), segments)
	c.jumpCount = snap.Jump.Count
	c.selection = snap.Highlights
	c.state = Playing

	c.removeTime = c.player.OnTimeUpdate(c.handleTimeUpdate)
	c.removeStore = c.store.Subscribe(c.handleStoreChange)

	start := c.segments[c.segIdx].Start
	c.mu.Unlock()

	c.player.Seek(start)
	c.player.Play()
	return nil
}

// Stop ends any session and pauses the media. Safe to call in any state, any
// number of times.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.teardownLocked()
	c.state = Idle
	c.mu.Unlock()

	c.player.Pause()
}

// Close releases the controller's subscriptions without touching the media.
// Use it when the controller is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	c.teardownLocked()
	c.state = Idle
	c.mu.Unlock()
}

// activeSegment picks the segment whose [start, end) window contains now.
// Before the first segment, or past them all, playback restarts at the first
// segment.
func activeSegment(now float64, segments []domain.HighlightSegment) int {
	if now < segments[0].Start {
		return 0
	}
	for i, seg := range segments {
		if now >= seg.Start && now < seg.End {
			return i
		}
	}
	return 0
}

// handleTimeUpdate advances the session when playback crosses the active
// segment's end: seek to the next segment, or stop after the last one.
// The final segment's widened end can sit past the media's end, where the
// clock parks; reaching the media end therefore completes the segment too.
func (c *Controller) handleTimeUpdate(now float64) {
	mediaEnd := c.player.Duration()

	c.mu.Lock()
	if c.state != Playing {
		c.mu.Unlock()
		return
	}

	seg := c.segments[c.segIdx]
	if now < seg.End && now < mediaEnd {
		c.mu.Unlock()
		return
	}

	c.segIdx++
	if c.segIdx < len(c.segments) {
		next := c.segments[c.segIdx].Start
		c.mu.Unlock()
		c.player.Seek(next)
		return
	}

	c.teardownLocked()
	c.state = Stopped
	c.mu.Unlock()

	c.player.Pause()
}

// handleStoreChange force-stops the session when an external seek happens or
// the highlight selection changes, since the active segment would otherwise
// desynchronize from the new position.
func (c *Controller) handleStoreChange(snap store.Snapshot) {
	c.mu.Lock()
	if c.state != Playing {
		c.mu.Unlock()
		return
	}
	if snap.Jump.Count == c.jumpCount && equalSelections(snap.Highlights, c.selection) {
		c.mu.Unlock()
		return
	}

	c.teardownLocked()
	c.state = Idle
	c.mu.Unlock()

	c.player.Pause()
}

// teardownLocked removes the session's subscriptions. Exactly one time-update
// subscription exists per session; it is removed before a new one is
// installed.
func (c *Controller) teardownLocked() {
	if c.removeTime != nil {
		c.removeTime()
		c.removeTime = nil
	}
	if c.removeStore != nil {
		c.removeStore()
		c.removeStore = nil
	}
	c.segments = nil
	c.segIdx = 0
}

func equalSelections(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
