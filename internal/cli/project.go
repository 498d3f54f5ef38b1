package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajivraghu/video-maker/internal/align"
	"github.com/rajivraghu/video-maker/internal/media"
	"github.com/rajivraghu/video-maker/internal/pipeline"
	"github.com/rajivraghu/video-maker/internal/timeline"
	"github.com/rajivraghu/video-maker/internal/transcribe"
)

// on-disk layout of one video project
type project struct {
	Root             string
	TranscriptPath   string
	AudioPath        string
	ImagesDir        string
	SceneConfigPath  string
	TransitionSounds string
	OutputDir        string
}

func openProject(root string) (*project, error) {
	input := filepath.Join(root, "input")

	p := &project{
		Root:             root,
		TranscriptPath:   filepath.Join(input, "transcript.txt"),
		AudioPath:        filepath.Join(input, "audio.mp3"),
		ImagesDir:        filepath.Join(input, "images"),
		SceneConfigPath:  filepath.Join(input, "scene_config.json"),
		TransitionSounds: filepath.Join(input, "transition_sounds"),
		OutputDir:        filepath.Join(root, "output"),
	}

	if _, err := os.Stat(p.TranscriptPath); err != nil {
		return nil, fmt.Errorf("transcript not found: %s", p.TranscriptPath)
	}
	if _, err := os.Stat(p.AudioPath); err != nil {
		return nil, fmt.Errorf("narration audio not found: %s", p.AudioPath)
	}
	if _, err := os.Stat(p.ImagesDir); err != nil {
		return nil, fmt.Errorf("images directory not found: %s", p.ImagesDir)
	}

	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return p, nil
}

// gathers images, scene overrides, and transition sounds for the resolver
func (p *project) mediaConfig() (media.Config, error) {
	images, err := media.DiscoverImages(p.ImagesDir)
	if err != nil {
		return media.Config{}, err
	}

	overrides, err := media.LoadSceneConfig(p.SceneConfigPath)
	if err != nil {
		return media.Config{}, err
	}

	// relative override paths are resolved against the project root
	for index, o := range overrides {
		if o.Source != "" && !filepath.IsAbs(o.Source) {
			o.Source = filepath.Join(p.Root, o.Source)
			overrides[index] = o
		}
	}

	sounds, err := media.DiscoverTransitionSounds(p.TransitionSounds)
	if err != nil {
		return media.Config{}, err
	}

	return media.Config{
		DefaultImages:    images,
		Overrides:        overrides,
		TransitionSounds: sounds,
	}, nil
}

// builds the transcriber selected by the shared provider flags
func transcriberFromFlags(ctx context.Context, cmd *cobra.Command) (transcribe.Transcriber, error) {
	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	language, _ := cmd.Flags().GetString("language")

	var provider transcribe.Provider
	switch strings.ToLower(providerStr) {
	case "openai":
		provider = transcribe.ProviderOpenAI
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
	case "gemini":
		provider = transcribe.ProviderGemini
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	default:
		return nil, fmt.Errorf("unsupported provider %q: use openai or gemini", providerStr)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required: use --api-key or the environment variable", providerStr)
	}

	return transcribe.Factory(ctx, provider, apiKey, transcribe.Options{
		Language: language,
		Model:    model,
	})
}

// transcribes the narration and runs the pure alignment core
func runAlignment(
	ctx context.Context,
	cmd *cobra.Command,
	p *project,
	opts pipeline.Options,
) (*pipeline.Result, error) {
	transcriber, err := transcriberFromFlags(ctx, cmd)
	if err != nil {
		return nil, err
	}

	transcriptText, err := os.ReadFile(p.TranscriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	mediaCfg, err := p.mediaConfig()
	if err != nil {
		return nil, err
	}

	logger.Infow("Transcribing narration audio", "audio", p.AudioPath)

	ttResult, err := transcriber.Transcribe(ctx, p.AudioPath)
	if err != nil {
		return nil, err
	}

	logger.Infow("Transcription complete",
		"words", len(ttResult.Words),
		"duration", ttResult.Duration.String(),
	)

	result, err := pipeline.Run(pipeline.Inputs{
		Transcript:    string(transcriptText),
		Words:         ttResult.Words,
		AudioDuration: ttResult.Duration,
		Media:         mediaCfg,
	}, opts)
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		logger.Warnw("Media fallback", "detail", w.String())
	}
	logScores(result.Scenes)

	return result, nil
}

// reports per-paragraph alignment quality
func logScores(scenes []timeline.Scene) {
	flagged := 0
	for _, s := range scenes {
		label := align.ScoreLabel(s.MatchScore)
		if label == "review" {
			flagged++
		}
		logger.Debugw("Paragraph aligned",
			"paragraph", s.ParagraphIndex,
			"start", fmt.Sprintf("%.2fs", s.Start.Seconds()),
			"end", fmt.Sprintf("%.2fs", s.End.Seconds()),
			"score", fmt.Sprintf("%.2f", s.MatchScore),
			"quality", label,
		)
	}
	if flagged > 0 {
		logger.Warnw("Some paragraphs need manual review",
			"flagged", flagged,
			"threshold", align.ScoreAcceptable,
		)
	}
}
