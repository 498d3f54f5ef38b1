package cli

import (
	"github.com/spf13/cobra"

	"github.com/rajivraghu/video-maker/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "videomaker",
	Short: "Turn a transcript, narration audio, and images into a captioned video",
	Long: `Video Maker synchronizes a written transcript with its narration audio
and assembles one video scene per paragraph, with burned-in captions.

Paragraph timing is recovered by aligning the transcript against a
word-level speech-to-text transcription of the narration.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("provider", "p", "openai", "Transcription provider (openai, gemini)")
	rootCmd.PersistentFlags().
		StringP("api-key", "k", "", "Transcription API key (or set OPENAI_API_KEY / GEMINI_API_KEY)")
	rootCmd.PersistentFlags().
		String("model", "", "Transcription model override")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code of the narration (e.g. en, es)")
}
