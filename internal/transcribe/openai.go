package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/rajivraghu/video-maker/internal/audio"
)

// implements Transcriber interface using OpenAI Audio API
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// word entry from OpenAI Whisper verbose_json response
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string        `json:"text"`
	Words    []whisperWord `json:"words"`
	Language string        `json:"language"`
	Duration float64       `json:"duration"`
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes a narration audio file with word-level timestamps
func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	duration, _ := audio.GetDuration(audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}
	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, &TranscriptionError{Provider: ProviderOpenAI, Err: err}
	}

	words, respDuration, err := parseVerboseJSONWords(resp.RawJSON())
	if err != nil {
		return nil, &TranscriptionError{Provider: ProviderOpenAI, Err: err}
	}

	if respDuration > 0 {
		duration = respDuration
	}

	return &Result{
		Words:    words,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

func parseVerboseJSONWords(rawJSON string) ([]Word, time.Duration, error) {
	if rawJSON == "" {
		return nil, 0, fmt.Errorf("empty response")
	}

	var verboseResp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &verboseResp); err != nil {
		return nil, 0, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	words := make([]Word, 0, len(verboseResp.Words))
	for _, w := range verboseResp.Words {
		words = append(words, Word{
			Text:  w.Word,
			Start: time.Duration(w.Start * float64(time.Second)),
			End:   time.Duration(w.End * float64(time.Second)),
		})
	}

	duration := time.Duration(verboseResp.Duration * float64(time.Second))

	return words, duration, nil
}
