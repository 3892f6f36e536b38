package simplayer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPlayer_AdvancesWhilePlaying(t *testing.T) {
	p := New(10, WithInterval(5*time.Millisecond))
	defer p.Close()

	p.Play()
	time.Sleep(60 * time.Millisecond)
	p.Pause()

	if pos := p.Position(); pos <= 0 {
		t.Errorf("Position() = %v after playing, want > 0", pos)
	}

	// Paused position stays put.
	pos := p.Position()
	time.Sleep(30 * time.Millisecond)
	if got := p.Position(); got != pos {
		t.Errorf("Position() moved from %v to %v while paused", pos, got)
	}
}

func TestPlayer_SeekClamps(t *testing.T) {
	p := New(10, WithInterval(time.Hour))
	defer p.Close()

	p.Seek(-5)
	if got := p.Position(); got != 0 {
		t.Errorf("Seek(-5) left position at %v, want 0", got)
	}

	p.Seek(99)
	if got := p.Position(); got != 10 {
		t.Errorf("Seek(99) left position at %v, want 10", got)
	}

	p.Seek(4.5)
	if got := p.Position(); got != 4.5 {
		t.Errorf("Seek(4.5) left position at %v", got)
	}
}

func TestPlayer_TimeUpdates(t *testing.T) {
	p := New(10, WithInterval(5*time.Millisecond))
	defer p.Close()

	var updates atomic.Int64
	remove := p.OnTimeUpdate(func(float64) {
		updates.Add(1)
	})

	p.Play()
	time.Sleep(60 * time.Millisecond)
	p.Pause()

	if updates.Load() == 0 {
		t.Error("no time updates while playing")
	}

	seen := updates.Load()
	remove()
	remove() // idempotent
	p.Play()
	time.Sleep(30 * time.Millisecond)
	p.Pause()

	if updates.Load() != seen {
		t.Error("removed listener kept firing")
	}
}

func TestPlayer_StopsAtDuration(t *testing.T) {
	p := New(0.01, WithInterval(5*time.Millisecond))
	defer p.Close()

	p.Play()
	time.Sleep(50 * time.Millisecond)

	if p.Playing() {
		t.Error("still playing past the media end")
	}
	if got := p.Position(); got != 0.01 {
		t.Errorf("Position() = %v at end, want 0.01", got)
	}
}
