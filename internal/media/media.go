// Package media assigns each scene its visual source and attaches
// transition sounds to timeline boundaries.
package media

import (
	"fmt"
	"time"

	"github.com/rajivraghu/video-maker/internal/timeline"
)

// kind of visual source backing a scene
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindMissing Kind = "missing"
)

// how long a transition sound effect plays at a boundary
const TransitionSoundDuration = time.Second

// visual source for one scene
type Assignment struct {
	ParagraphIndex int
	Kind           Kind
	Source         string
	TrimStart      time.Duration // video only
	TrimEnd        time.Duration // video only
}

// audio cue attached to a timeline boundary, independent of scene media
//
// Position 0 plays at the start of the video; position N plays centered on
// the boundary into scene N+1.
type TransitionSound struct {
	Position int
	Source   string
	At       time.Duration
}

// recoverable media problem; processing continues with substituted media
type FallbackWarning struct {
	ParagraphIndex int
	Source         string
	Reason         string
}

func (w FallbackWarning) String() string {
	return fmt.Sprintf("scene %d: %s (%s), falling back to image", w.ParagraphIndex, w.Reason, w.Source)
}

// fatal precondition failure: fewer default images than paragraphs
type CountMismatchError struct {
	Paragraphs int
	Images     int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("not enough images: %d paragraphs but %d images", e.Paragraphs, e.Images)
}

// sparse per-scene override, keyed by paragraph index
type Override struct {
	Kind   Kind
	Source string
}

// media inputs for one run: ordered default images plus sparse overrides
type Config struct {
	// DefaultImages holds one image path per paragraph index, in order.
	// Must have at least as many entries as there are paragraphs.
	DefaultImages []string

	// Overrides maps paragraph index (1-based) to a replacement source.
	Overrides map[int]Override

	// TransitionSounds maps boundary position to a sound file path.
	TransitionSounds map[int]string
}

// resolves scene media using an injectable duration probe
type Resolver struct {
	// ProbeDuration reports a media file's duration, or an error if the
	// file cannot be read. Defaults are wired by the caller.
	ProbeDuration func(path string) (time.Duration, error)
}

// Resolve computes the media assignment for every scene and the resolved
// transition sounds.
//
// A video override is honored only when its source probes successfully and
// covers the scene duration; otherwise the scene falls back to its default
// image and a warning is recorded. Unresolvable transition sounds are
// dropped with a warning, never fatal.
func (r *Resolver) Resolve(
	scenes []timeline.Scene,
	cfg Config,
) ([]Assignment, []TransitionSound, []FallbackWarning, error) {
	if len(cfg.DefaultImages) < len(scenes) {
		return nil, nil, nil, &CountMismatchError{
			Paragraphs: len(scenes),
			Images:     len(cfg.DefaultImages),
		}
	}

	var warnings []FallbackWarning
	assignments := make([]Assignment, len(scenes))

	for i, scene := range scenes {
		assignments[i] = r.resolveScene(scene, cfg.DefaultImages[i], cfg.Overrides[scene.ParagraphIndex], &warnings)
	}

	sounds := r.resolveTransitionSounds(scenes, cfg.TransitionSounds, &warnings)

	return assignments, sounds, warnings, nil
}

func (r *Resolver) resolveScene(
	scene timeline.Scene,
	defaultImage string,
	override Override,
	warnings *[]FallbackWarning,
) Assignment {
	if override.Kind == KindVideo && override.Source != "" {
		dur, err := r.probe(override.Source)
		switch {
		case err != nil:
			*warnings = append(*warnings, FallbackWarning{
				ParagraphIndex: scene.ParagraphIndex,
				Source:         override.Source,
				Reason:         fmt.Sprintf("video not usable: %v", err),
			})
		case dur < scene.Duration():
			*warnings = append(*warnings, FallbackWarning{
				ParagraphIndex: scene.ParagraphIndex,
				Source:         override.Source,
				Reason: fmt.Sprintf("video is %.2fs but scene needs %.2fs",
					dur.Seconds(), scene.Duration().Seconds()),
			})
		default:
			return Assignment{
				ParagraphIndex: scene.ParagraphIndex,
				Kind:           KindVideo,
				Source:         override.Source,
				TrimStart:      0,
				TrimEnd:        scene.Duration(),
			}
		}
	}

	if defaultImage == "" {
		*warnings = append(*warnings, FallbackWarning{
			ParagraphIndex: scene.ParagraphIndex,
			Reason:         "no default image for scene",
		})
		return Assignment{ParagraphIndex: scene.ParagraphIndex, Kind: KindMissing}
	}

	return Assignment{
		ParagraphIndex: scene.ParagraphIndex,
		Kind:           KindImage,
		Source:         defaultImage,
	}
}

func (r *Resolver) resolveTransitionSounds(
	scenes []timeline.Scene,
	sources map[int]string,
	warnings *[]FallbackWarning,
) []TransitionSound {
	var sounds []TransitionSound

	for position := 0; position < len(scenes); position++ {
		source, ok := sources[position]
		if !ok {
			continue
		}

		if _, err := r.probe(source); err != nil {
			*warnings = append(*warnings, FallbackWarning{
				ParagraphIndex: position,
				Source:         source,
				Reason:         fmt.Sprintf("transition sound not usable: %v", err),
			})
			continue
		}

		at := time.Duration(0)
		if position > 0 {
			at = scenes[position].Start - TransitionSoundDuration/2
			if at < 0 {
				at = 0
			}
		}

		sounds = append(sounds, TransitionSound{
			Position: position,
			Source:   source,
			At:       at,
		})
	}

	return sounds
}

func (r *Resolver) probe(path string) (time.Duration, error) {
	if r.ProbeDuration == nil {
		return 0, fmt.Errorf("no duration probe configured")
	}
	return r.ProbeDuration(path)
}
