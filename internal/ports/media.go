package ports

// MediaPlayer is the single media playback resource the core drives. At most
// one owner issues position commands at a time; whoever last called Seek owns
// the position.
//
// Time-update callbacks fire from the playback clock only, never re-entrantly
// from Seek, and report monotonically non-decreasing times except across an
// explicit Seek.
type MediaPlayer interface {
	// Play starts or resumes playback.
	Play()

	// Pause halts playback, keeping the current position.
	Pause()

	// Seek moves the playback position to the given time in seconds.
	// Implementations clamp to the valid range.
	Seek(seconds float64)

	// Position returns the current playback position in seconds.
	Position() float64

	// Duration returns the media length in seconds.
	Duration() float64

	// OnTimeUpdate registers a callback invoked as playback advances. The
	// returned function removes the registration; it is safe to call more
	// than once.
	OnTimeUpdate(fn func(seconds float64)) (remove func())
}

// Scroller brings a transcript row into view, centered. Implementations must
// tolerate indices they hold no element handle for and must be cheap to call
// repeatedly with the same index.
type Scroller interface {
	ScrollTo(sentenceIndex int)
}
