package transcribe

import (
	"context"
	"fmt"
	"time"
)

// one recognized word with its position in the narration audio
type Word struct {
	Text  string
	Start time.Duration
	End   time.Duration
}

// transcription result: the raw word stream plus total audio duration
type Result struct {
	Words    []Word
	Language string
	Duration time.Duration
}

// interface for audio transcription with word-level timestamps
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// transcription options
type Options struct {
	Language string // Source language of the audio
	Model    string
	Prompt   string
}

// reported when the external engine fails; the cause is preserved verbatim
type TranscriptionError struct {
	Provider Provider
	Err      error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed (%s): %v", e.Provider, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
