package aiproc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/domain"
)

func TestClient_Fetch(t *testing.T) {
	payload := domain.TranscriptPayload{
		Data: []domain.SectionEntry{
			{Title: "Intro", Sentences: []domain.SentenceEntry{
				{Time: 0, Sentence: "Hi.", SentenceIndex: 0},
			}},
		},
	}

	var gotDuration float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Duration float64 `json:"duration"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		gotDuration = req.Duration
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	sections, err := NewClient(srv.URL).Fetch(context.Background(), 42.5)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotDuration != 42.5 {
		t.Errorf("posted duration = %v, want 42.5", gotDuration)
	}
	if !reflect.DeepEqual(sections, payload.Data) {
		t.Errorf("Fetch() = %+v, want %+v", sections, payload.Data)
	}
}

func TestClient_FetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), 10)
	if err == nil {
		t.Fatal("Fetch() succeeded on a 500 response")
	}
}

func TestGenerator_Shape(t *testing.T) {
	sections, err := NewGenerator(1).Fetch(context.Background(), 60)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	// One sentence every 5 seconds over [0, 60).
	if got := domain.SentenceCount(sections); got != 12 {
		t.Errorf("SentenceCount = %d, want 12", got)
	}

	// Sentence indices increase globally across sections.
	next := 0
	for _, sec := range sections {
		if len(sec.Sentences) == 0 {
			t.Errorf("section %q is empty", sec.Title)
		}
		for _, s := range sec.Sentences {
			if s.SentenceIndex != next {
				t.Fatalf("sentenceIndex = %d, want %d", s.SentenceIndex, next)
			}
			next++
		}
	}

	// The result feeds the indexer cleanly.
	idx := domain.BuildIndex(sections, 60)
	for sec := 0; sec <= 60; sec++ {
		if _, ok := idx.Timeline[sec]; !ok {
			t.Errorf("generated transcript leaves second %d uncovered", sec)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, _ := NewGenerator(7).Fetch(ctx, 30)
	b, _ := NewGenerator(7).Fetch(ctx, 30)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different transcripts")
	}
}

func TestGenerator_ZeroDuration(t *testing.T) {
	sections, err := NewGenerator(1).Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if sections != nil {
		t.Errorf("Fetch(0) = %v, want nil", sections)
	}
}
