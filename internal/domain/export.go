package domain

import (
	"fmt"
	"strings"
)

// SRT renders the transcript as SRT subtitles. Each sentence's display window
// is its time cue widened by one second at the end, matching highlight
// playback.
func SRT(sections []SectionEntry, duration float64) string {
	idx := BuildIndex(sections, duration)

	var sb strings.Builder
	seq := 1
	for _, cue := range idx.TimeCues {
		rec, ok := idx.DataHash[cue.SentenceIndex]
		if !ok || cue.End < cue.Start {
			continue
		}

		sb.WriteString(fmt.Sprintf("%d\n", seq))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatSRTTime(rec.Time), formatSRTTime(float64(cue.End+1))))
		sb.WriteString(strings.TrimSpace(rec.Sentence))
		sb.WriteString("\n\n")
		seq++
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// formatSRTTime converts seconds to SRT timestamp format (HH:MM:SS,mmm)
func formatSRTTime(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	millis := int((seconds - float64(int(seconds))) * 1000)

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// CutSegment is one span of a highlight cut list.
type CutSegment struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
}

// CutList is a machine-readable manifest of highlight segments for external
// cutting tools. No transcoding happens here.
type CutList struct {
	Source   string       `json:"source"`
	Duration float64      `json:"duration_sec"`
	Segments []CutSegment `json:"segments"`
}

// BuildCutList assembles the cut-list manifest for a highlight selection.
func BuildCutList(idx *Index, selected []int, source string, duration float64) *CutList {
	list := &CutList{Source: source, Duration: duration}
	for _, seg := range SegmentsFor(idx, selected) {
		text := ""
		if rec, ok := idx.DataHash[seg.SentenceIndex]; ok {
			text = rec.Sentence
		}
		list.Segments = append(list.Segments, CutSegment{
			StartSec: seg.Start,
			EndSec:   seg.End,
			Text:     text,
		})
	}
	return list
}
