package application

import (
	"sync"
	"testing"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

// stubPlayer is the minimal media element for binder tests.
type stubPlayer struct {
	mu        sync.Mutex
	pos       float64
	seeks     []float64
	listeners map[int]func(float64)
	nextID    int
}

func newStubPlayer() *stubPlayer {
	return &stubPlayer{listeners: make(map[int]func(float64))}
}

func (p *stubPlayer) Play()  {}
func (p *stubPlayer) Pause() {}

func (p *stubPlayer) Seek(seconds float64) {
	p.mu.Lock()
	p.pos = seconds
	p.seeks = append(p.seeks, seconds)
	p.mu.Unlock()
}

func (p *stubPlayer) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func (p *stubPlayer) Duration() float64 { return 100 }

func (p *stubPlayer) OnTimeUpdate(fn func(float64)) (remove func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *stubPlayer) emit(seconds float64) {
	p.mu.Lock()
	p.pos = seconds
	fns := make([]func(float64), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(seconds)
	}
}

func boundStore() *store.Store {
	st := store.New()
	st.LoadTranscript([]domain.SectionEntry{
		{Title: "A", Sentences: []domain.SentenceEntry{
			{Time: 0, Sentence: "a", SentenceIndex: 0},
			{Time: 5, Sentence: "b", SentenceIndex: 1},
		}},
	}, 10)
	return st
}

func TestBindPlayer_TimeUpdatesReachStore(t *testing.T) {
	st := boundStore()
	player := newStubPlayer()
	release := BindPlayer(st, player)
	defer release()

	player.emit(6.4)

	snap := st.Snapshot()
	if snap.CurrentTime != 6.4 || snap.CurrentSecond != 6 {
		t.Errorf("store time = %v/%d, want 6.4/6", snap.CurrentTime, snap.CurrentSecond)
	}
	if snap.Jump.Count != 0 {
		t.Error("recorded time update produced a jump request")
	}
}

func TestBindPlayer_JumpRequestsMovePlayer(t *testing.T) {
	st := boundStore()
	player := newStubPlayer()
	release := BindPlayer(st, player)
	defer release()

	st.RequestSeek(8)
	st.RequestSeek(8) // same target, still a distinct event

	player.mu.Lock()
	seeks := append([]float64(nil), player.seeks...)
	player.mu.Unlock()

	if len(seeks) != 2 || seeks[0] != 8 || seeks[1] != 8 {
		t.Errorf("player seeks = %v, want [8 8]", seeks)
	}
}

func TestBindPlayer_ToggleDoesNotSeek(t *testing.T) {
	st := boundStore()
	player := newStubPlayer()
	release := BindPlayer(st, player)
	defer release()

	st.ToggleHighlight(1)

	player.mu.Lock()
	n := len(player.seeks)
	player.mu.Unlock()
	if n != 0 {
		t.Errorf("highlight toggle issued %d seeks", n)
	}
}

func TestBindPlayer_Release(t *testing.T) {
	st := boundStore()
	player := newStubPlayer()
	release := BindPlayer(st, player)

	release()
	release() // idempotent

	player.emit(3)
	st.RequestSeek(9)

	if got := st.Snapshot().CurrentTime; got != 9 {
		t.Errorf("CurrentTime = %v, want 9 (only the direct seek)", got)
	}
	player.mu.Lock()
	n := len(player.seeks)
	player.mu.Unlock()
	if n != 0 {
		t.Errorf("released binder still issued %d seeks", n)
	}
}
