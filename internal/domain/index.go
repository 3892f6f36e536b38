package domain

import "math"

// TimeCue is the second-resolution interval during which one sentence is
// active. Start and End are inclusive integer seconds. A cue may be inverted
// (Start > End) when source timestamps are non-monotonic; such cues cover no
// seconds and play as empty segments.
type TimeCue struct {
	Start         int `json:"start"`
	End           int `json:"end"`
	SentenceIndex int `json:"sentenceIndex"`
}

// SentenceRecord is a sentence enriched with its owning section title, keyed
// by sentence index for O(1) retrieval.
type SentenceRecord struct {
	Time          float64 `json:"time"`
	SentenceIndex int     `json:"sentenceIndex"`
	Section       string  `json:"section"`
	Sentence      string  `json:"sentence"`
}

// Index holds the derived lookup tables for one transcript. All fields are
// built once by BuildIndex and never mutated afterwards.
type Index struct {
	// Timeline maps each covered integer second to the active sentence index.
	// Seconds missing from the map have no active sentence.
	Timeline map[int]int
	// TimeCues lists every sentence's interval in transcript order.
	TimeCues []TimeCue
	// DataHash maps sentence index to its enriched record.
	DataHash map[int]SentenceRecord
}

// BuildIndex flattens the sectioned transcript into second-granularity lookup
// tables. For the sentence at flat position i, the cue runs from
// floor(time_i) to floor(time_{i+1})-1, and to floor(duration) for the last
// sentence. An empty section list yields empty tables.
func BuildIndex(sections []SectionEntry, duration float64) *Index {
	var flat []SentenceRecord
	for _, sec := range sections {
		for _, s := range sec.Sentences {
			flat = append(flat, SentenceRecord{
				Time:          s.Time,
				SentenceIndex: s.SentenceIndex,
				Section:       sec.Title,
				Sentence:      s.Sentence,
			})
		}
	}

	idx := &Index{
		Timeline: make(map[int]int),
		DataHash: make(map[int]SentenceRecord, len(flat)),
	}

	for i, rec := range flat {
		start := int(math.Floor(rec.Time))
		end := int(math.Floor(duration))
		if i+1 < len(flat) {
			end = int(math.Floor(flat[i+1].Time)) - 1
		}

		idx.TimeCues = append(idx.TimeCues, TimeCue{
			Start:         start,
			End:           end,
			SentenceIndex: rec.SentenceIndex,
		})

		// Inverted cues cover no seconds.
		for sec := start; sec <= end; sec++ {
			idx.Timeline[sec] = rec.SentenceIndex
		}

		idx.DataHash[rec.SentenceIndex] = rec
	}

	return idx
}

// SentenceAt looks up the sentence active at the given integer second.
func (x *Index) SentenceAt(second int) (SentenceRecord, bool) {
	si, ok := x.Timeline[second]
	if !ok {
		return SentenceRecord{}, false
	}
	rec, ok := x.DataHash[si]
	return rec, ok
}

// CueFor returns the time cue of the given sentence index. Cue positions
// normally coincide with sentence indices; the scan below covers transcripts
// where they do not.
func (x *Index) CueFor(sentenceIndex int) (TimeCue, bool) {
	if sentenceIndex >= 0 && sentenceIndex < len(x.TimeCues) &&
		x.TimeCues[sentenceIndex].SentenceIndex == sentenceIndex {
		return x.TimeCues[sentenceIndex], true
	}
	for _, cue := range x.TimeCues {
		if cue.SentenceIndex == sentenceIndex {
			return cue, true
		}
	}
	return TimeCue{}, false
}
