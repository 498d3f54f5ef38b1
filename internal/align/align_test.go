package align

import (
	"reflect"
	"testing"
	"time"

	"github.com/rajivraghu/video-maker/internal/transcribe"
	"github.com/rajivraghu/video-maker/internal/transcript"
)

func sec(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// evenly spaced one-second words starting at t=0
func evenWords(texts ...string) []transcribe.Word {
	words := make([]transcribe.Word, len(texts))
	for i, text := range texts {
		words[i] = transcribe.Word{
			Text:  text,
			Start: sec(float64(i)),
			End:   sec(float64(i + 1)),
		}
	}
	return words
}

func threeParagraphs(t *testing.T) []transcript.Paragraph {
	t.Helper()
	paragraphs, err := transcript.Segment(
		"the quick brown fox jumps\n\nover the lazy dog today\n\nwhile everyone else was sleeping",
	)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	return paragraphs
}

func TestParagraphsPerfectMatch(t *testing.T) {
	paragraphs := threeParagraphs(t)
	words := evenWords(
		"the", "quick", "brown", "fox", "jumps",
		"over", "the", "lazy", "dog", "today",
		"while", "everyone", "else", "was", "sleeping",
	)

	spans := Paragraphs(paragraphs, words)

	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	wantBounds := [][2]time.Duration{
		{sec(0), sec(5)},
		{sec(5), sec(10)},
		{sec(10), sec(15)},
	}
	for i, span := range spans {
		if span.MatchScore != 1.0 {
			t.Errorf("span %d: expected score 1.0, got %v", i, span.MatchScore)
		}
		if span.Start != wantBounds[i][0] || span.End != wantBounds[i][1] {
			t.Errorf("span %d: expected %v-%v, got %v-%v",
				i, wantBounds[i][0], wantBounds[i][1], span.Start, span.End)
		}
		if span.ParagraphIndex != i+1 {
			t.Errorf("span %d: expected paragraph index %d, got %d", i, i+1, span.ParagraphIndex)
		}
	}
}

func TestParagraphsMisrecognizedWord(t *testing.T) {
	paragraphs := threeParagraphs(t)
	// "lazy" misrecognized as "hazy" in paragraph 2
	words := evenWords(
		"the", "quick", "brown", "fox", "jumps",
		"over", "the", "hazy", "dog", "today",
		"while", "everyone", "else", "was", "sleeping",
	)

	spans := Paragraphs(paragraphs, words)

	if spans[1].MatchScore != 0.8 {
		t.Errorf("expected score 0.8 for paragraph 2, got %v", spans[1].MatchScore)
	}
	if spans[0].MatchScore != 1.0 || spans[2].MatchScore != 1.0 {
		t.Errorf("neighbor scores affected: %v, %v", spans[0].MatchScore, spans[2].MatchScore)
	}

	// the misrecognized word is interior, so bounds are unchanged
	if spans[1].Start != sec(5) || spans[1].End != sec(10) {
		t.Errorf("expected paragraph 2 at 5s-10s, got %v-%v", spans[1].Start, spans[1].End)
	}
}

func TestParagraphsNoCrossover(t *testing.T) {
	paragraphs := threeParagraphs(t)
	// "the" appears in paragraphs 1 and 2; extra inserted words shift things around
	words := evenWords(
		"uh", "the", "quick", "brown", "fox", "jumps",
		"and", "over", "the", "lazy", "dog", "today",
		"while", "everyone", "else", "was", "sleeping",
	)

	spans := Paragraphs(paragraphs, words)

	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			t.Errorf("span %d starts at %v before span %d ends at %v",
				i, spans[i].Start, i-1, spans[i-1].End)
		}
	}
}

func TestParagraphsUnmatchedParagraph(t *testing.T) {
	paragraphs, err := transcript.Segment("hello world\n\nxyzzy plugh\n\ngoodbye world")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	words := evenWords("hello", "world", "goodbye", "world")

	spans := Paragraphs(paragraphs, words)

	if spans[1].MatchScore != 0.0 {
		t.Errorf("expected score 0 for unmatched paragraph, got %v", spans[1].MatchScore)
	}
	if spans[1].Start != spans[1].End {
		t.Errorf("expected degenerate span, got %v-%v", spans[1].Start, spans[1].End)
	}
	if spans[1].Start != spans[0].End {
		t.Errorf("degenerate span should sit at previous end %v, got %v", spans[0].End, spans[1].Start)
	}
}

func TestParagraphsDeterministic(t *testing.T) {
	paragraphs := threeParagraphs(t)
	words := evenWords(
		"the", "quick", "brown", "fax", "jumps",
		"over", "a", "lazy", "dog", "today",
		"wile", "everyone", "else", "was", "sleeping",
	)

	first := Paragraphs(paragraphs, words)
	for run := 0; run < 5; run++ {
		if got := Paragraphs(paragraphs, words); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", run, got, first)
		}
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, "excellent"},
		{0.8, "excellent"},
		{0.79, "acceptable"},
		{0.6, "acceptable"},
		{0.59, "review"},
		{0.0, "review"},
	}
	for _, tt := range tests {
		if got := ScoreLabel(tt.score); got != tt.want {
			t.Errorf("ScoreLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
