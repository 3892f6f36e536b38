package aiproc

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// Generator is the offline stand-in for the AI processing backend, used when
// no endpoint is configured. It emits one sentence every five seconds,
// grouped into sections of two to four sentences, with globally increasing
// sentence indices.
type Generator struct {
	seed int64
}

// NewGenerator creates a generator. The same seed and duration always yield
// the same transcript.
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

const sentenceInterval = 5.0

// Fetch synthesizes the sectioned transcript for the given duration.
func (g *Generator) Fetch(ctx context.Context, duration float64) ([]domain.SectionEntry, error) {
	if math.IsNaN(duration) || duration <= 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(g.seed))

	var sections []domain.SectionEntry
	current := domain.SectionEntry{Title: "Section 1"}
	sectionMax := 2 + rng.Intn(3) // 2 to 4 sentences per section

	sentenceIndex := 0
	for t := 0.0; t < duration; t += sentenceInterval {
		current.Sentences = append(current.Sentences, domain.SentenceEntry{
			Time:          t,
			Sentence:      fmt.Sprintf("This is sentence number %d.", sentenceIndex),
			SentenceIndex: sentenceIndex,
		})
		sentenceIndex++

		if len(current.Sentences) >= sectionMax {
			sections = append(sections, current)
			current = domain.SectionEntry{Title: fmt.Sprintf("Section %d", len(sections)+1)}
			sectionMax = 2 + rng.Intn(3)
		}
	}

	if len(current.Sentences) > 0 {
		sections = append(sections, current)
	}

	return sections, nil
}

var _ ports.TranscriptSource = (*Generator)(nil)
