package application

import (
	"sync"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/store"
)

// BindPlayer wires the store and a media player together in both directions:
// the player's time updates are recorded into the store, and every jump
// request observed in the store moves the player's position. The returned
// function releases both subscriptions; it is safe to call more than once.
//
// Recorded time goes through SetCurrentTime, not RequestSeek, so the binding
// cannot feed back into itself.
func BindPlayer(st *store.Store, player ports.MediaPlayer) (release func()) {
	var mu sync.Mutex
	lastJump := st.Snapshot().Jump.Count

	removeTime := player.OnTimeUpdate(func(seconds float64) {
		st.SetCurrentTime(seconds)
	})

	removeStore := st.Subscribe(func(snap store.Snapshot) {
		mu.Lock()
		if snap.Jump.Count == lastJump {
			mu.Unlock()
			return
		}
		lastJump = snap.Jump.Count
		mu.Unlock()

		player.Seek(snap.Jump.Time)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			removeTime()
			removeStore()
		})
	}
}
