// Package timeline turns noisy raw alignment spans into the contiguous
// scene timeline every downstream stage depends on.
package timeline

import (
	"time"

	"github.com/rajivraghu/video-maker/internal/align"
	"github.com/rajivraghu/video-maker/internal/transcript"
)

// default floor for scenes that collapsed to nothing during alignment
const DefaultMinSceneDuration = 500 * time.Millisecond

// normalization options
type Options struct {
	// MinSceneDuration is assigned to collapsed scenes, borrowed from a
	// neighbor. Must be positive; zero selects the default.
	MinSceneDuration time.Duration
}

// one time-bounded unit of the video, covering exactly one paragraph
//
// A normalized sequence is gap-free, overlap-free, and spans exactly
// [0, audioDuration].
type Scene struct {
	ParagraphIndex int
	Text           string
	Start          time.Duration
	End            time.Duration
	MatchScore     float64
}

func (s Scene) Duration() time.Duration {
	return s.End - s.Start
}

// Normalize builds the final scene timeline from raw alignment spans.
//
// Repair policy, applied in index order:
//   - scene 0 starts at 0
//   - every later scene starts exactly where the previous one ends,
//     resolving overlaps and gaps with the same rule (later scenes never
//     steal time from earlier ones)
//   - the last scene ends exactly at audioDuration, stretched or clipped
//   - a scene collapsed to zero length gets the floor duration, taken from
//     the next scene's start, or from the previous scene if it is last
//
// Normalizing an already-normalized timeline is a no-op.
func Normalize(
	spans []align.Span,
	paragraphs []transcript.Paragraph,
	audioDuration time.Duration,
	opts Options,
) []Scene {
	floor := opts.MinSceneDuration
	if floor <= 0 {
		floor = DefaultMinSceneDuration
	}

	scenes := make([]Scene, len(spans))
	for i, sp := range spans {
		scenes[i] = Scene{
			ParagraphIndex: sp.ParagraphIndex,
			Start:          sp.Start,
			End:            sp.End,
			MatchScore:     sp.MatchScore,
		}
		if i < len(paragraphs) {
			scenes[i].Text = paragraphs[i].Text
		}
	}

	last := len(scenes) - 1
	for i := range scenes {
		if i == 0 {
			scenes[i].Start = 0
		} else {
			scenes[i].Start = scenes[i-1].End
		}

		if i == last {
			scenes[i].End = audioDuration
		} else if scenes[i].End > audioDuration {
			scenes[i].End = audioDuration
		}

		if scenes[i].End > scenes[i].Start {
			continue
		}

		// collapsed scene: assign the floor duration
		if i < last {
			scenes[i].End = scenes[i].Start + floor
			if scenes[i].End > audioDuration {
				scenes[i].End = audioDuration
			}
		} else {
			start := scenes[i].End - floor
			if i > 0 && start < scenes[i-1].Start {
				start = scenes[i-1].Start
			}
			if start < 0 {
				start = 0
			}
			scenes[i].Start = start
			if i > 0 {
				scenes[i-1].End = start
			}
		}
	}

	return scenes
}
