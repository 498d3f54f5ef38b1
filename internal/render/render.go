// Package render converts the normalized timeline and media assignments
// into the declarative plan the encoder consumes. No encoding happens here.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rajivraghu/video-maker/internal/media"
	"github.com/rajivraghu/video-maker/internal/timeline"
)

// default crossfade window between scenes
const DefaultFadeDuration = 500 * time.Millisecond

// render plan options
type Options struct {
	// FadeDuration is the fade-in/fade-out window applied to segments.
	// Zero selects the default.
	FadeDuration time.Duration

	// SuppressFirstFadeIn removes the fade-in on the opening segment.
	SuppressFirstFadeIn bool

	// SuppressLastFadeOut removes the fade-out on the closing segment.
	SuppressLastFadeOut bool
}

// one declarative unit of work for the encoder
type Segment struct {
	Start   time.Duration
	End     time.Duration
	Media   media.Assignment
	Caption string
	FadeIn  time.Duration
	FadeOut time.Duration
}

func (s Segment) Duration() time.Duration {
	return s.End - s.Start
}

// ordered contract handed to the encoding collaborator
type Plan struct {
	Segments         []Segment
	TransitionSounds []media.TransitionSound
}

// Build produces the render plan, one segment per scene in order.
func Build(
	scenes []timeline.Scene,
	assignments []media.Assignment,
	sounds []media.TransitionSound,
	opts Options,
) (*Plan, error) {
	if len(assignments) != len(scenes) {
		return nil, fmt.Errorf("media assignments (%d) do not match scenes (%d)",
			len(assignments), len(scenes))
	}

	fade := opts.FadeDuration
	if fade <= 0 {
		fade = DefaultFadeDuration
	}

	segments := make([]Segment, len(scenes))
	for i, scene := range scenes {
		seg := Segment{
			Start:   scene.Start,
			End:     scene.End,
			Media:   assignments[i],
			Caption: scene.Text,
			FadeIn:  fade,
			FadeOut: fade,
		}

		// short scenes get proportionally shorter fades so the windows
		// never overlap each other
		if half := seg.Duration() / 2; half < fade {
			seg.FadeIn = half
			seg.FadeOut = half
		}

		if i == 0 && opts.SuppressFirstFadeIn {
			seg.FadeIn = 0
		}
		if i == len(scenes)-1 && opts.SuppressLastFadeOut {
			seg.FadeOut = 0
		}

		segments[i] = seg
	}

	return &Plan{Segments: segments, TransitionSounds: sounds}, nil
}

// serializable form of a render segment
type segmentRecord struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	MediaKind string  `json:"media_kind"`
	Source    string  `json:"source,omitempty"`
	TrimStart float64 `json:"trim_start,omitempty"`
	TrimEnd   float64 `json:"trim_end,omitempty"`
	Caption   string  `json:"caption"`
	FadeIn    float64 `json:"fade_in"`
	FadeOut   float64 `json:"fade_out"`
}

type planRecord struct {
	Segments []segmentRecord `json:"segments"`
	Sounds   []soundRecord   `json:"transition_sounds,omitempty"`
}

type soundRecord struct {
	Position int     `json:"position"`
	Source   string  `json:"source"`
	At       float64 `json:"at"`
}

// writes the plan in its machine-readable form
func (p *Plan) WriteJSON(w io.Writer) error {
	rec := planRecord{Segments: make([]segmentRecord, len(p.Segments))}
	for i, s := range p.Segments {
		rec.Segments[i] = segmentRecord{
			Start:     s.Start.Seconds(),
			End:       s.End.Seconds(),
			MediaKind: string(s.Media.Kind),
			Source:    s.Media.Source,
			TrimStart: s.Media.TrimStart.Seconds(),
			TrimEnd:   s.Media.TrimEnd.Seconds(),
			Caption:   s.Caption,
			FadeIn:    s.FadeIn.Seconds(),
			FadeOut:   s.FadeOut.Seconds(),
		}
	}
	for _, snd := range p.TransitionSounds {
		rec.Sounds = append(rec.Sounds, soundRecord{
			Position: snd.Position,
			Source:   snd.Source,
			At:       snd.At.Seconds(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
