// Package encode is the media-encoding collaborator: it consumes the
// declarative render plan and produces the final video file with ffmpeg.
package encode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/rajivraghu/video-maker/internal/media"
	"github.com/rajivraghu/video-maker/internal/render"
)

// encoding collaborator failure, carrying the engine's diagnostic text
type EncodingError struct {
	Stage      string
	Diagnostic string
	Err        error
}

func (e *EncodingError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("encoding failed during %s: %v\n%s", e.Stage, e.Err, e.Diagnostic)
	}
	return fmt.Sprintf("encoding failed during %s: %v", e.Stage, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// one encoding request
type Job struct {
	AudioPath  string // narration track, muxed under the full video
	ASSPath    string // burned-in caption track; empty disables burning
	OutputPath string
	WorkDir    string // scratch space for intermediate clips

	Width  int
	Height int

	Preset       string // libx264 preset
	CRF          int
	AudioBitrate string
}

// fills unset fields with the defaults used for final renders
func (j *Job) applyDefaults() {
	if j.Width <= 0 || j.Height <= 0 {
		j.Width, j.Height = 1920, 1080
	}
	if j.Preset == "" {
		j.Preset = "medium"
	}
	if j.CRF <= 0 {
		j.CRF = 18
	}
	if j.AudioBitrate == "" {
		j.AudioBitrate = "256k"
	}
}

// interface for the external encoding engine
type Encoder interface {
	Encode(ctx context.Context, plan *render.Plan, job Job) error
}

// ffmpeg-backed implementation
type FFmpegEncoder struct{}

func NewFFmpegEncoder() *FFmpegEncoder {
	return &FFmpegEncoder{}
}

// Encode renders the plan: one clip per segment, concatenated, muxed with
// the narration audio and transition sounds, captions burned in last.
func (e *FFmpegEncoder) Encode(ctx context.Context, plan *render.Plan, job Job) error {
	job.applyDefaults()

	if err := os.MkdirAll(job.WorkDir, 0755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}

	clips := make([]string, 0, len(plan.Segments))
	for i, seg := range plan.Segments {
		if err := ctx.Err(); err != nil {
			return err
		}
		clip := filepath.Join(job.WorkDir, fmt.Sprintf("clip_%03d.mp4", i))
		if err := e.encodeSegment(seg, clip, job); err != nil {
			return err
		}
		clips = append(clips, clip)
	}

	assembled := filepath.Join(job.WorkDir, "assembled.mp4")
	if err := e.concatWithAudio(clips, job, assembled); err != nil {
		return err
	}

	if len(plan.TransitionSounds) > 0 {
		mixed := filepath.Join(job.WorkDir, "assembled_sounds.mp4")
		if err := e.mixTransitionSounds(assembled, plan.TransitionSounds, job, mixed); err != nil {
			return err
		}
		assembled = mixed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if job.ASSPath == "" {
		return os.Rename(assembled, job.OutputPath)
	}
	return e.burnCaptions(assembled, job)
}

// renders a single scene clip with its fades
func (e *FFmpegEncoder) encodeSegment(seg render.Segment, clip string, job Job) error {
	duration := seg.Duration().Seconds()
	filter := segmentFilter(seg, job.Width, job.Height)

	var input *ffmpeg.Stream
	switch seg.Media.Kind {
	case media.KindVideo:
		input = ffmpeg.Input(seg.Media.Source, ffmpeg.KwArgs{
			"ss": seg.Media.TrimStart.Seconds(),
			"t":  duration,
		})
	case media.KindImage:
		input = ffmpeg.Input(seg.Media.Source, ffmpeg.KwArgs{
			"loop": 1,
			"t":    duration,
		})
	default:
		return &EncodingError{
			Stage: "clip",
			Err:   fmt.Errorf("scene %d has no media source", seg.Media.ParagraphIndex),
		}
	}

	stream := input.Output(clip, ffmpeg.KwArgs{
		"vf":      filter,
		"c:v":     "libx264",
		"preset":  "ultrafast", // intermediates get re-encoded at final quality
		"crf":     18,
		"pix_fmt": "yuv420p",
		"an":      "",
	})

	return e.run(stream, "clip")
}

// scale/pad to the output frame, then apply the segment's fade windows
func segmentFilter(seg render.Segment, width, height int) string {
	parts := []string{
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", width, height),
		fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", width, height),
		"setsar=1",
		"fps=25",
	}

	duration := seg.Duration().Seconds()
	if fade := seg.FadeIn.Seconds(); fade > 0 {
		parts = append(parts, fmt.Sprintf("fade=t=in:st=0:d=%.3f", fade))
	}
	if fade := seg.FadeOut.Seconds(); fade > 0 {
		parts = append(parts, fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", duration-fade, fade))
	}

	return strings.Join(parts, ",")
}

// concatenates scene clips and muxes the narration audio underneath
func (e *FFmpegEncoder) concatWithAudio(clips []string, job Job, out string) error {
	listPath := filepath.Join(job.WorkDir, "concat_list.txt")
	var sb strings.Builder
	for _, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return fmt.Errorf("failed to resolve clip path: %w", err)
		}
		sb.WriteString(fmt.Sprintf("file '%s'\n", abs))
	}
	if err := os.WriteFile(listPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}

	video := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"})
	narration := ffmpeg.Input(job.AudioPath)

	stream := ffmpeg.Output([]*ffmpeg.Stream{video, narration}, out, ffmpeg.KwArgs{
		"c:v":      "libx264",
		"preset":   job.Preset,
		"crf":      job.CRF,
		"c:a":      "aac",
		"b:a":      job.AudioBitrate,
		"shortest": "",
	})

	return e.run(stream, "concat")
}

// overlays transition sounds at their boundary timestamps with amix
func (e *FFmpegEncoder) mixTransitionSounds(
	in string,
	sounds []media.TransitionSound,
	job Job,
	out string,
) error {
	main := ffmpeg.Input(in)

	mixInputs := []*ffmpeg.Stream{main.Get("a")}
	for _, snd := range sounds {
		delayMs := snd.At.Milliseconds()
		s := ffmpeg.Input(snd.Source).Get("a").
			Filter("atrim", ffmpeg.Args{}, ffmpeg.KwArgs{
				"start": 0,
				"end":   media.TransitionSoundDuration.Seconds(),
			}).
			Filter("asetpts", ffmpeg.Args{"PTS-STARTPTS"}).
			Filter("volume", ffmpeg.Args{"1.5"}).
			Filter("adelay", ffmpeg.Args{fmt.Sprintf("%d|%d", delayMs, delayMs)})
		mixInputs = append(mixInputs, s)
	}

	mixed := ffmpeg.Filter(mixInputs, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
		"inputs":             len(mixInputs),
		"duration":           "first",
		"dropout_transition": 0,
		"normalize":          0,
	})

	stream := ffmpeg.Output([]*ffmpeg.Stream{main.Get("v"), mixed}, out, ffmpeg.KwArgs{
		"c:v": "copy",
		"c:a": "aac",
		"b:a": job.AudioBitrate,
	})

	return e.run(stream, "transition sounds")
}

// burns the ASS caption track into the assembled video
func (e *FFmpegEncoder) burnCaptions(in string, job Job) error {
	stream := ffmpeg.Input(in).Output(job.OutputPath, ffmpeg.KwArgs{
		"vf":     fmt.Sprintf("ass=%s", escapeFilterPath(job.ASSPath)),
		"c:v":    "libx264",
		"preset": job.Preset,
		"crf":    job.CRF,
		"c:a":    "copy",
	})

	return e.run(stream, "captions")
}

func (e *FFmpegEncoder) run(stream *ffmpeg.Stream, stage string) error {
	cmd := stream.OverWriteOutput().Compile()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &EncodingError{
			Stage:      stage,
			Diagnostic: tail(stderr.String(), 1000),
			Err:        err,
		}
	}
	return nil
}

// colons separate filter options, so paths need them escaped
func escapeFilterPath(path string) string {
	return strings.ReplaceAll(path, ":", "\\:")
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
