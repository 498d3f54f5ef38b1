package transcribe

import (
	"errors"
	"testing"
	"time"
)

func sec(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

func TestNewWordStream(t *testing.T) {
	words := []Word{
		{Text: "hello", Start: sec(0), End: sec(0.5)},
		{Text: "world", Start: sec(0.5), End: sec(1.0)},
		{Text: "  ", Start: sec(1.0), End: sec(1.2)},       // empty text
		{Text: "bad", Start: sec(-1), End: sec(0.2)},       // negative start
		{Text: "worse", Start: sec(2.0), End: sec(1.5)},    // end before start
		{Text: "rewind", Start: sec(0.1), End: sec(0.3)},   // non-monotonic
		{Text: "again", Start: sec(2.0), End: sec(2.4)},
	}

	out, err := NewWordStream(words)
	if err != nil {
		t.Fatalf("NewWordStream failed: %v", err)
	}

	want := []string{"hello", "world", "again"}
	if len(out) != len(want) {
		t.Fatalf("expected %d words, got %d: %v", len(want), len(out), out)
	}
	for i, w := range out {
		if w.Text != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], w.Text)
		}
	}
}

func TestNewWordStreamEmpty(t *testing.T) {
	tests := []struct {
		name  string
		words []Word
	}{
		{"nil input", nil},
		{"all invalid", []Word{
			{Text: "x", Start: sec(-5), End: sec(-4)},
			{Text: "", Start: sec(0), End: sec(1)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWordStream(tt.words); !errors.Is(err, ErrEmptyWordStream) {
				t.Errorf("expected ErrEmptyWordStream, got %v", err)
			}
		})
	}
}
