package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajivraghu/video-maker/internal/align"
	"github.com/rajivraghu/video-maker/internal/audio"
	"github.com/rajivraghu/video-maker/internal/pipeline"
)

var timingsCmd = &cobra.Command{
	Use:   "timings [project_dir]",
	Short: "Align the transcript and report paragraph timings without encoding",
	Long: `Transcribe the narration, align it against the transcript, and write
the paragraph timing reports to output/ without producing a video.

Useful for checking alignment quality before committing to a full encode.`,
	Args: cobra.ExactArgs(1),
	RunE: runTimings,
}

func init() {
	rootCmd.AddCommand(timingsCmd)
}

func runTimings(cmd *cobra.Command, args []string) error {
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	result, err := runAlignment(cmd.Context(), cmd, p, pipeline.Options{
		ProbeDuration: audio.GetDuration,
	})
	if err != nil {
		return err
	}

	if err := writeTimingReports(p, result.Scenes); err != nil {
		return err
	}

	for _, s := range result.Scenes {
		fmt.Printf("Para %3d: %6.2fs - %6.2fs (score: %.2f, %s)\n",
			s.ParagraphIndex,
			s.Start.Seconds(),
			s.End.Seconds(),
			s.MatchScore,
			align.ScoreLabel(s.MatchScore),
		)
	}

	return nil
}
