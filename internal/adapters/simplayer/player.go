// Package simplayer is a wall-clock driven media element stand-in. It keeps
// a playback position that advances in real time while playing, and emits
// time updates the way a video element does, so the player port can be
// exercised without rendering any video.
package simplayer

import (
	"math"
	"sync"
	"time"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

const defaultInterval = 100 * time.Millisecond

// Player implements ports.MediaPlayer on a wall clock.
type Player struct {
	mu sync.Mutex

	pos      float64
	duration float64
	rate     float64
	playing  bool
	lastTick time.Time

	listeners map[int]func(float64)
	nextID    int

	interval time.Duration
	done     chan struct{}
	closed   bool
}

// Option configures a Player.
type Option func(*Player)

// WithInterval sets the tick interval driving time updates.
func WithInterval(d time.Duration) Option {
	return func(p *Player) { p.interval = d }
}

// WithRate sets the playback rate (1.0 = real time).
func WithRate(rate float64) Option {
	return func(p *Player) { p.rate = rate }
}

// New creates a player for media of the given duration and starts its clock.
// Call Close to stop the clock goroutine.
func New(duration float64, opts ...Option) *Player {
	p := &Player{
		duration:  duration,
		rate:      1.0,
		interval:  defaultInterval,
		listeners: make(map[int]func(float64)),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	go p.run()
	return p
}

func (p *Player) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case now := <-ticker.C:
			p.tick(now)
		}
	}
}

func (p *Player) tick(now time.Time) {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}

	elapsed := now.Sub(p.lastTick).Seconds()
	p.lastTick = now
	p.pos += elapsed * p.rate
	if p.pos >= p.duration {
		p.pos = p.duration
		p.playing = false
	}

	pos := p.pos
	fns := p.listenersLocked()
	p.mu.Unlock()

	// Listeners run outside the lock so they may call back into the player.
	for _, fn := range fns {
		fn(pos)
	}
}

func (p *Player) listenersLocked() []func(float64) {
	fns := make([]func(float64), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	return fns
}

// Play starts or resumes the clock.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing || p.closed {
		return
	}
	if p.pos >= p.duration {
		// Replay from the top once the end was reached.
		p.pos = 0
	}
	p.playing = true
	p.lastTick = time.Now()
}

// Pause halts the clock, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// Playing reports whether the clock is advancing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Seek moves the position, clamped to [0, duration]. No time update is
// emitted; updates come from the clock only.
func (p *Player) Seek(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if math.IsNaN(seconds) {
		return
	}
	p.pos = math.Min(math.Max(seconds, 0), p.duration)
	p.lastTick = time.Now()
}

// Position returns the current position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Duration returns the media length in seconds.
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// OnTimeUpdate registers a time-update listener and returns its remover.
func (p *Player) OnTimeUpdate(fn func(float64)) (remove func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// Close stops the clock goroutine. The player is unusable afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.playing = false
	p.mu.Unlock()

	close(p.done)
}

var _ ports.MediaPlayer = (*Player)(nil)
