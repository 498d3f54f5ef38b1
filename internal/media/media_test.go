package media

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rajivraghu/video-maker/internal/timeline"
)

func sec(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

func testScenes() []timeline.Scene {
	return []timeline.Scene{
		{ParagraphIndex: 1, Start: sec(0), End: sec(5)},
		{ParagraphIndex: 2, Start: sec(5), End: sec(10)},
		{ParagraphIndex: 3, Start: sec(10), End: sec(15)},
	}
}

// probe backed by a fixed table; unknown paths fail
func tableProbe(durations map[string]time.Duration) func(string) (time.Duration, error) {
	return func(path string) (time.Duration, error) {
		if d, ok := durations[path]; ok {
			return d, nil
		}
		return 0, fmt.Errorf("no such file: %s", path)
	}
}

func TestResolveDefaults(t *testing.T) {
	r := &Resolver{ProbeDuration: tableProbe(nil)}
	cfg := Config{DefaultImages: []string{"1.png", "2.png", "3.png"}}

	assignments, sounds, warnings, err := r.Resolve(testScenes(), cfg)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(warnings) != 0 || len(sounds) != 0 {
		t.Errorf("unexpected warnings %v or sounds %v", warnings, sounds)
	}
	for i, a := range assignments {
		if a.Kind != KindImage {
			t.Errorf("scene %d: expected image, got %s", i+1, a.Kind)
		}
		if a.Source != fmt.Sprintf("%d.png", i+1) {
			t.Errorf("scene %d: wrong source %q", i+1, a.Source)
		}
	}
}

func TestResolveVideoOverride(t *testing.T) {
	r := &Resolver{ProbeDuration: tableProbe(map[string]time.Duration{
		"clip.mp4": sec(8),
	})}
	cfg := Config{
		DefaultImages: []string{"1.png", "2.png", "3.png"},
		Overrides:     map[int]Override{2: {Kind: KindVideo, Source: "clip.mp4"}},
	}

	assignments, _, warnings, err := r.Resolve(testScenes(), cfg)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	a := assignments[1]
	if a.Kind != KindVideo || a.Source != "clip.mp4" {
		t.Fatalf("scene 2: expected video clip.mp4, got %+v", a)
	}
	if a.TrimStart != 0 || a.TrimEnd != sec(5) {
		t.Errorf("scene 2: expected trim 0-5s, got %v-%v", a.TrimStart, a.TrimEnd)
	}
}

func TestResolveShortVideoFallsBack(t *testing.T) {
	r := &Resolver{ProbeDuration: tableProbe(map[string]time.Duration{
		"short.mp4": sec(3), // scene 2 needs 5s
	})}
	cfg := Config{
		DefaultImages: []string{"1.png", "2.png", "3.png"},
		Overrides:     map[int]Override{2: {Kind: KindVideo, Source: "short.mp4"}},
	}

	assignments, _, warnings, err := r.Resolve(testScenes(), cfg)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if assignments[1].Kind != KindImage || assignments[1].Source != "2.png" {
		t.Errorf("expected image fallback, got %+v", assignments[1])
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].ParagraphIndex != 2 {
		t.Errorf("warning for wrong scene: %+v", warnings[0])
	}
}

func TestResolveUnresolvableVideoFallsBack(t *testing.T) {
	r := &Resolver{ProbeDuration: tableProbe(nil)}
	cfg := Config{
		DefaultImages: []string{"1.png", "2.png", "3.png"},
		Overrides:     map[int]Override{1: {Kind: KindVideo, Source: "gone.mp4"}},
	}

	assignments, _, warnings, err := r.Resolve(testScenes(), cfg)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if assignments[0].Kind != KindImage {
		t.Errorf("expected image fallback, got %+v", assignments[0])
	}
	if len(warnings) != 1 {
		t.Errorf("expected one warning, got %v", warnings)
	}
}

func TestResolveCountMismatch(t *testing.T) {
	r := &Resolver{ProbeDuration: tableProbe(nil)}
	cfg := Config{DefaultImages: []string{"1.png", "2.png"}} // 3 scenes

	_, _, _, err := r.Resolve(testScenes(), cfg)

	var mismatch *CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CountMismatchError, got %v", err)
	}
	if mismatch.Paragraphs != 3 || mismatch.Images != 2 {
		t.Errorf("unexpected counts: %+v", mismatch)
	}
}

func TestResolveTransitionSounds(t *testing.T) {
	r := &Resolver{ProbeDuration: tableProbe(map[string]time.Duration{
		"0.mp3": sec(1),
		"2.mp3": sec(1),
	})}
	cfg := Config{
		DefaultImages: []string{"1.png", "2.png", "3.png"},
		TransitionSounds: map[int]string{
			0: "0.mp3",
			1: "missing.mp3",
			2: "2.mp3",
		},
	}

	_, sounds, warnings, err := r.Resolve(testScenes(), cfg)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(sounds) != 2 {
		t.Fatalf("expected 2 sounds, got %v", sounds)
	}
	if sounds[0].Position != 0 || sounds[0].At != 0 {
		t.Errorf("position 0 should play at start: %+v", sounds[0])
	}
	// position 2 is centered on the boundary into scene 3 at 10s
	if sounds[1].Position != 2 || sounds[1].At != sec(10)-TransitionSoundDuration/2 {
		t.Errorf("position 2 misplaced: %+v", sounds[1])
	}

	// the missing sound is dropped with a warning, not fatal
	if len(warnings) != 1 {
		t.Errorf("expected one warning for missing sound, got %v", warnings)
	}
}
