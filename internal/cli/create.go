package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajivraghu/video-maker/internal/audio"
	"github.com/rajivraghu/video-maker/internal/encode"
	"github.com/rajivraghu/video-maker/internal/media"
	"github.com/rajivraghu/video-maker/internal/pipeline"
	"github.com/rajivraghu/video-maker/internal/render"
	"github.com/rajivraghu/video-maker/internal/subtitle"
	"github.com/rajivraghu/video-maker/internal/timeline"
)

var createCmd = &cobra.Command{
	Use:   "create [project_dir]",
	Short: "Create a synchronized video from a project directory",
	Long: `Create a captioned video from a project directory laid out as:

  input/transcript.txt          one paragraph per blank-line-separated block
  input/audio.mp3               narration audio
  input/images/                 numbered scene images (1.png, 2.png, ...)
  input/scene_config.json       optional per-scene video overrides
  input/transition_sounds/      optional numbered boundary sounds (0.mp3, ...)

Paragraph timings, subtitles, the render plan, and the final video are
written to output/.

Examples:
  videomaker create my-project
  videomaker create my-project --caption-style bold_caps
  videomaker create my-project --provider gemini --skip-encode`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().
		String("caption-style", "default", "Caption style (default, bold_caps, none)")
	createCmd.Flags().
		Bool("skip-encode", false, "Write timings, subtitles, and the render plan but do not encode")
	createCmd.Flags().
		String("preset", "medium", "libx264 encoder preset")
	createCmd.Flags().
		Int("crf", 18, "libx264 quality (lower is better)")
	createCmd.Flags().
		Duration("min-scene", timeline.DefaultMinSceneDuration, "Floor duration for collapsed scenes")
	createCmd.Flags().
		Duration("fade", render.DefaultFadeDuration, "Crossfade duration between scenes")
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	styleStr, _ := cmd.Flags().GetString("caption-style")
	skipEncode, _ := cmd.Flags().GetBool("skip-encode")
	preset, _ := cmd.Flags().GetString("preset")
	crf, _ := cmd.Flags().GetInt("crf")
	minScene, _ := cmd.Flags().GetDuration("min-scene")
	fade, _ := cmd.Flags().GetDuration("fade")

	var style subtitle.Style
	switch strings.ToLower(styleStr) {
	case "default":
		style = subtitle.StyleDefault
	case "bold_caps":
		style = subtitle.StyleBoldCaps
	case "none":
		style = subtitle.StyleNone
	default:
		return fmt.Errorf("unsupported caption style %q: use default, bold_caps, or none", styleStr)
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	logger.Infow("Starting video creation",
		"project", p.Root,
		"caption_style", styleStr,
	)

	result, err := runAlignment(ctx, cmd, p, pipeline.Options{
		Timeline:      timeline.Options{MinSceneDuration: minScene},
		Render:        render.Options{FadeDuration: fade},
		CaptionStyle:  style,
		ProbeDuration: audio.GetDuration,
	})
	if err != nil {
		return err
	}

	if err := writeTimingReports(p, result.Scenes); err != nil {
		return err
	}

	planPath := filepath.Join(p.OutputDir, "render_plan.json")
	if err := writeFileWith(planPath, result.Plan.WriteJSON); err != nil {
		return err
	}
	logger.Infow("Render plan written", "path", planPath)

	width, height := detectFrameSize(result)

	assPath := ""
	if style != subtitle.StyleNone {
		srtPath := filepath.Join(p.OutputDir, "subtitles.srt")
		if err := writeFileWith(srtPath, func(w io.Writer) error {
			return subtitle.WriteSRT(w, result.Captions)
		}); err != nil {
			return err
		}

		assPath = filepath.Join(p.OutputDir, "subtitles.ass")

		// word-level highlighting uses the raw word stream, not scenes
		if err := writeFileWith(assPath, func(w io.Writer) error {
			return subtitle.WriteWordHighlightASS(w, result.Words, width, height, style)
		}); err != nil {
			return err
		}

		logger.Infow("Subtitles written", "srt", srtPath, "ass", assPath)
	}

	if skipEncode {
		logger.Infow("Skipping encode as requested")
		return nil
	}

	outputPath := filepath.Join(p.OutputDir, "final_video.mp4")
	workDir, err := os.MkdirTemp("", "videomaker-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	logger.Infow("Encoding video",
		"scenes", len(result.Plan.Segments),
		"resolution", fmt.Sprintf("%dx%d", width, height),
		"preset", preset,
	)

	encoder := encode.NewFFmpegEncoder()
	err = encoder.Encode(ctx, result.Plan, encode.Job{
		AudioPath:  p.AudioPath,
		ASSPath:    assPath,
		OutputPath: outputPath,
		WorkDir:    workDir,
		Width:      width,
		Height:     height,
		Preset:     preset,
		CRF:        crf,
	})
	if err != nil {
		return err
	}

	logger.Infow("Video created", "path", outputPath)
	return nil
}

// writes both timing report formats to the output directory
func writeTimingReports(p *project, scenes []timeline.Scene) error {
	jsonPath := filepath.Join(p.OutputDir, "paragraph_timings.json")
	if err := writeFileWith(jsonPath, func(w io.Writer) error {
		return timeline.WriteJSON(w, scenes)
	}); err != nil {
		return err
	}

	textPath := filepath.Join(p.OutputDir, "paragraph_timings.txt")
	if err := writeFileWith(textPath, func(w io.Writer) error {
		return timeline.WriteText(w, scenes)
	}); err != nil {
		return err
	}

	logger.Infow("Timing reports written", "json", jsonPath, "txt", textPath)
	return nil
}

// frame size comes from the first video override, then the first image,
// then a 1080p default
func detectFrameSize(result *pipeline.Result) (int, int) {
	for _, seg := range result.Plan.Segments {
		if seg.Media.Kind != media.KindVideo {
			continue
		}
		if info, err := audio.Probe(seg.Media.Source); err == nil && info.Width > 0 {
			return info.Width, info.Height
		}
	}
	for _, seg := range result.Plan.Segments {
		if seg.Media.Kind != media.KindImage {
			continue
		}
		if info, err := audio.Probe(seg.Media.Source); err == nil && info.Width > 0 {
			return info.Width, info.Height
		}
	}
	return 1920, 1080
}

func writeFileWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
