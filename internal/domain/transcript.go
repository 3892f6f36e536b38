package domain

import (
	"strings"
)

// SentenceEntry is a single timed sentence of a transcript. SentenceIndex is
// globally unique and monotonically increasing across the whole transcript,
// it does not restart per section.
type SentenceEntry struct {
	Time          float64 `json:"time"`
	Sentence      string  `json:"sentence"`
	SentenceIndex int     `json:"sentenceIndex"`
}

// SectionEntry is a titled, ordered group of sentences. Concatenating all
// sections in order yields the full transcript.
type SectionEntry struct {
	Title     string          `json:"title"`
	Sentences []SentenceEntry `json:"sentences"`
}

// TranscriptPayload is the wire shape produced by the AI processing service.
type TranscriptPayload struct {
	Data []SectionEntry `json:"data"`
}

// SentenceCount returns the total number of sentences across all sections.
func SentenceCount(sections []SectionEntry) int {
	n := 0
	for _, sec := range sections {
		n += len(sec.Sentences)
	}
	return n
}

// TranscriptText returns the plain text of the transcript, sentences joined
// by a single space, sections in order.
func TranscriptText(sections []SectionEntry) string {
	var parts []string
	for _, sec := range sections {
		for _, s := range sec.Sentences {
			parts = append(parts, strings.TrimSpace(s.Sentence))
		}
	}
	return strings.Join(parts, " ")
}
