// Package pipeline composes the alignment core into one pure function:
// no process-wide state, no I/O beyond the injected duration probe.
package pipeline

import (
	"time"

	"github.com/rajivraghu/video-maker/internal/align"
	"github.com/rajivraghu/video-maker/internal/media"
	"github.com/rajivraghu/video-maker/internal/render"
	"github.com/rajivraghu/video-maker/internal/subtitle"
	"github.com/rajivraghu/video-maker/internal/timeline"
	"github.com/rajivraghu/video-maker/internal/transcribe"
	"github.com/rajivraghu/video-maker/internal/transcript"
)

// everything one run consumes
type Inputs struct {
	Transcript    string
	Words         []transcribe.Word
	AudioDuration time.Duration
	Media         media.Config
}

// per-run configuration, all optional
type Options struct {
	Timeline     timeline.Options
	Render       render.Options
	CaptionStyle subtitle.Style

	// ProbeDuration resolves media source durations; injected so the
	// pipeline itself stays free of filesystem access.
	ProbeDuration func(path string) (time.Duration, error)
}

// everything one run produces
type Result struct {
	Paragraphs []transcript.Paragraph
	Words      []transcribe.Word // the cleaned stream that was aligned
	Scenes     []timeline.Scene
	Plan       *render.Plan
	Captions   []subtitle.Entry
	Warnings   []media.FallbackWarning
}

// Run executes the full alignment core. Fatal errors abort before any
// render plan exists; no partial result is returned.
func Run(in Inputs, opts Options) (*Result, error) {
	paragraphs, err := transcript.Segment(in.Transcript)
	if err != nil {
		return nil, err
	}

	words, err := transcribe.NewWordStream(in.Words)
	if err != nil {
		return nil, err
	}

	spans := align.Paragraphs(paragraphs, words)
	scenes := timeline.Normalize(spans, paragraphs, in.AudioDuration, opts.Timeline)

	resolver := &media.Resolver{ProbeDuration: opts.ProbeDuration}
	assignments, sounds, warnings, err := resolver.Resolve(scenes, in.Media)
	if err != nil {
		return nil, err
	}

	plan, err := render.Build(scenes, assignments, sounds, opts.Render)
	if err != nil {
		return nil, err
	}

	style := opts.CaptionStyle
	if style == "" {
		style = subtitle.StyleDefault
	}

	return &Result{
		Paragraphs: paragraphs,
		Words:      words,
		Scenes:     scenes,
		Plan:       plan,
		Captions:   subtitle.FromScenes(scenes, style),
		Warnings:   warnings,
	}, nil
}
