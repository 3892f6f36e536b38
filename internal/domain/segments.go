package domain

import "sort"

// HighlightSegment is a playable time window derived from a highlighted
// sentence. Start is inclusive, End exclusive; End is the cue end widened by
// one second so the last spoken second is not truncated.
type HighlightSegment struct {
	Start         float64
	End           float64
	SentenceIndex int
}

// SegmentsFor maps a highlight selection to its ordered playback windows.
// Selection order is irrelevant; segments come back sorted by start time.
// Indices with no cue and inverted cues are skipped.
func SegmentsFor(idx *Index, selected []int) []HighlightSegment {
	var segs []HighlightSegment
	for _, si := range selected {
		cue, ok := idx.CueFor(si)
		if !ok {
			continue
		}
		if cue.End < cue.Start {
			// empty segment
			continue
		}
		segs = append(segs, HighlightSegment{
			Start:         float64(cue.Start),
			End:           float64(cue.End + 1),
			SentenceIndex: si,
		})
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
	return segs
}

// HighlightSpan is a highlighted stretch of the seek bar, in seconds of real
// sentence time rather than whole seconds.
type HighlightSpan struct {
	Start         float64
	End           float64
	SentenceIndex int
}

// HighlightSpans derives the left-to-right colored ranges for seek bar
// rendering. A selected sentence's span runs from its own time to the time of
// the sentence with the next index, or to the end of the video when there is
// none. Spans are emitted in ascending start order and are not coalesced.
func HighlightSpans(idx *Index, selected []int, duration float64) []HighlightSpan {
	sorted := append([]int(nil), selected...)
	sort.Ints(sorted)

	var spans []HighlightSpan
	for _, si := range sorted {
		rec, ok := idx.DataHash[si]
		if !ok {
			continue
		}
		end := duration
		if next, ok := idx.DataHash[si+1]; ok {
			end = next.Time
		}
		spans = append(spans, HighlightSpan{
			Start:         rec.Time,
			End:           end,
			SentenceIndex: si,
		})
	}
	return spans
}
