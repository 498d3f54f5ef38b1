package transcribe

import (
	"errors"
	"strings"
	"time"
)

// returned when the external engine yields zero usable words
var ErrEmptyWordStream = errors.New("transcription produced no usable words")

// normalizes an external word stream for alignment
//
// The external engine is not assumed trustworthy: entries with empty text,
// negative timestamps, end before start, or a start earlier than the previous
// kept word are discarded.
func NewWordStream(words []Word) ([]Word, error) {
	out := make([]Word, 0, len(words))

	lastStart := time.Duration(-1)
	for _, w := range words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		if w.Start < 0 || w.End < w.Start {
			continue
		}
		if w.Start < lastStart {
			continue
		}
		out = append(out, w)
		lastStart = w.Start
	}

	if len(out) == 0 {
		return nil, ErrEmptyWordStream
	}

	return out, nil
}
