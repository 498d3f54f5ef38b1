package encode

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rajivraghu/video-maker/internal/media"
	"github.com/rajivraghu/video-maker/internal/render"
)

func TestSegmentFilter(t *testing.T) {
	seg := render.Segment{
		Start:   0,
		End:     5 * time.Second,
		FadeIn:  500 * time.Millisecond,
		FadeOut: 500 * time.Millisecond,
	}

	filter := segmentFilter(seg, 1920, 1080)

	for _, want := range []string{
		"scale=1920:1080:force_original_aspect_ratio=decrease",
		"pad=1920:1080:(ow-iw)/2:(oh-ih)/2",
		"fade=t=in:st=0:d=0.500",
		"fade=t=out:st=4.500:d=0.500",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q: %s", want, filter)
		}
	}
}

func TestSegmentFilterSuppressedFades(t *testing.T) {
	seg := render.Segment{End: 5 * time.Second}

	filter := segmentFilter(seg, 1280, 720)
	if strings.Contains(filter, "fade=") {
		t.Errorf("zero fades should produce no fade filter: %s", filter)
	}
}

func TestEncodingError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &EncodingError{Stage: "concat", Diagnostic: "unknown codec", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("EncodingError should unwrap to its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "concat") || !strings.Contains(msg, "unknown codec") {
		t.Errorf("error message missing detail: %s", msg)
	}
}

func TestEncodeSegmentMissingMedia(t *testing.T) {
	e := NewFFmpegEncoder()
	seg := render.Segment{
		End:   time.Second,
		Media: media.Assignment{ParagraphIndex: 3, Kind: media.KindMissing},
	}

	err := e.encodeSegment(seg, t.TempDir()+"/clip.mp4", Job{Width: 1920, Height: 1080})

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	if got := escapeFilterPath("C:/subs/out.ass"); got != "C\\:/subs/out.ass" {
		t.Errorf("colon not escaped: %q", got)
	}
}

func TestJobDefaults(t *testing.T) {
	j := Job{}
	j.applyDefaults()
	if j.Width != 1920 || j.Height != 1080 {
		t.Errorf("unexpected default frame: %dx%d", j.Width, j.Height)
	}
	if j.Preset != "medium" || j.CRF != 18 || j.AudioBitrate != "256k" {
		t.Errorf("unexpected encode defaults: %+v", j)
	}
}
