package domain

import "errors"

var (
	// Transcript and indexing errors
	ErrNoTranscript = errors.New("no transcript loaded")
	ErrNoHighlights = errors.New("no sentences highlighted")

	// Media errors
	ErrVideoNotFound  = errors.New("video file not found")
	ErrProbeFailed    = errors.New("could not read media metadata")
	ErrFFprobeMissing = errors.New("ffprobe not found")

	// Transcript source errors
	ErrSourceUnavailable = errors.New("transcript service unavailable")

	// Cache errors
	ErrCacheMiss    = errors.New("cache miss")
	ErrCacheExpired = errors.New("cache expired")
)
