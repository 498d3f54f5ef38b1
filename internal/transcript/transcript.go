package transcript

import (
	"errors"
	"strings"
	"unicode"
)

// returned when the transcript text contains no paragraphs
var ErrEmptyTranscript = errors.New("transcript contains no paragraphs")

// one paragraph of the source transcript; becomes exactly one scene
type Paragraph struct {
	Index     int    // 1-based, playback order
	Text      string // original text, used verbatim for captions
	WordCount int    // normalized token count, used for match scoring
}

// splits raw transcript text into ordered paragraphs
//
// Paragraphs are separated by one or more blank (or whitespace-only) lines.
// Lines inside a paragraph are joined with single spaces.
func Segment(raw string) ([]Paragraph, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var paragraphs []Paragraph
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		text := strings.Join(block, " ")
		block = nil
		paragraphs = append(paragraphs, Paragraph{
			Index:     len(paragraphs) + 1,
			Text:      text,
			WordCount: len(Tokenize(text)),
		})
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()

	if len(paragraphs) == 0 {
		return nil, ErrEmptyTranscript
	}

	return paragraphs, nil
}

// splits text into normalized scoring tokens: lowercased,
// punctuation stripped, whitespace-delimited
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := Normalize(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// lowercases a word and strips everything except letters and digits
func Normalize(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
