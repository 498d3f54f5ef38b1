package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rajivraghu/video-maker/internal/audio"
)

// implements Transcriber interface using Google Gemini
type GeminiTranscriber struct {
	client  *genai.Client
	model   string
	options Options
}

// word entry from Gemini's JSON response
type geminiWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func NewGeminiTranscriber(ctx context.Context, apiKey string, opts Options) (*GeminiTranscriber, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiTranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes a narration audio file with word-level timestamps
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	uploadedFile, err := t.client.Files.UploadFromPath(ctx, audioPath, nil)
	if err != nil {
		return nil, &TranscriptionError{Provider: ProviderGemini, Err: fmt.Errorf("failed to upload audio file: %w", err)}
	}

	defer func() {
		_, _ = t.client.Files.Delete(ctx, uploadedFile.Name, nil)
	}()

	prompt := t.buildTranscriptionPrompt()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return nil, &TranscriptionError{Provider: ProviderGemini, Err: err}
	}

	words, err := t.parseTranscriptionResponse(result)
	if err != nil {
		return nil, &TranscriptionError{Provider: ProviderGemini, Err: err}
	}

	duration, _ := audio.GetDuration(audioPath)
	if duration == 0 && len(words) > 0 {
		duration = words[len(words)-1].End
	}

	return &Result{
		Words:    words,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

// creates the prompt for word-level transcription
func (t *GeminiTranscriber) buildTranscriptionPrompt() string {
	var sb strings.Builder

	sb.WriteString("Generate a word-level transcript of this audio. ")
	sb.WriteString("For every spoken word, provide the word itself and its start and end timestamps. ")
	sb.WriteString("Format your response as a JSON array with objects containing 'word', 'start', and 'end' fields, ")
	sb.WriteString("where 'start' and 'end' are timestamps in seconds (as numbers). ")

	if t.options.Language != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", t.options.Language))
	}

	if t.options.Prompt != "" {
		sb.WriteString(t.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY the JSON array, no other text or markdown formatting.")

	return sb.String()
}

// parses Gemini's response into timestamped words
func (t *GeminiTranscriber) parseTranscriptionResponse(result *genai.GenerateContentResponse) ([]Word, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}

	return extractTranscriptWords(cleanJSONResponse(responseText))
}

// pulls the word array out of a possibly chatty model response: tolerates
// preamble text, trailing text, and a wrapper object with a "words" key
func extractTranscriptWords(s string) ([]Word, error) {
	candidates := []string{s}

	if start := strings.Index(s, "["); start >= 0 {
		if end := strings.LastIndex(s, "]"); end > start {
			candidates = append(candidates, s[start:end+1])
		}
	}

	var lastErr error
	for _, c := range candidates {
		var raw []geminiWord
		if err := json.Unmarshal([]byte(c), &raw); err == nil {
			return convertGeminiWords(raw), nil
		} else {
			lastErr = err
		}

		var wrapper struct {
			Words []geminiWord `json:"words"`
		}
		if err := json.Unmarshal([]byte(c), &wrapper); err == nil && len(wrapper.Words) > 0 {
			return convertGeminiWords(wrapper.Words), nil
		}
	}

	return nil, fmt.Errorf("failed to parse JSON response: %w (response: %s)", lastErr, truncateString(s, 200))
}

func convertGeminiWords(raw []geminiWord) []Word {
	words := make([]Word, 0, len(raw))
	for _, w := range raw {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		words = append(words, Word{
			Text:  text,
			Start: time.Duration(w.Start * float64(time.Second)),
			End:   time.Duration(w.End * float64(time.Second)),
		})
	}
	return words
}

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	// remove ```json and ``` markers
	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	s = strings.TrimSpace(s)

	return s
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
