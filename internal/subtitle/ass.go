package subtitle

import (
	"fmt"
	"io"
	"strings"

	"github.com/rajivraghu/video-maker/internal/transcribe"
)

// caption appearance, BGR color values in ASS notation
const (
	assFontName       = "Poppins"
	assFontSize       = 48
	assFontColor      = "&H00FFFFFF" // white
	assHighlightColor = "&H00FFFF"   // yellow
	assOutlineColor   = "&H00000000" // black
	assOutlineWidth   = 3
	assShadowDepth    = 2
	assMarginBottom   = 60
	assAlignment      = 2 // bottom center
	wordsPerLine      = 6
)

// WriteWordHighlightASS writes an ASS subtitle track with word-by-word
// highlighting: words are grouped into lines and the word currently being
// spoken is colored.
func WriteWordHighlightASS(
	w io.Writer,
	words []transcribe.Word,
	width, height int,
	style Style,
) error {
	var sb strings.Builder

	bold := 0
	spacing := 0
	outline := assOutlineWidth
	if style == StyleBoldCaps {
		bold = -1
		spacing = 1
		outline++
	}

	sb.WriteString("[Script Info]\n")
	sb.WriteString("Title: Video Captions\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString(fmt.Sprintf("PlayResX: %d\n", width))
	sb.WriteString(fmt.Sprintf("PlayResY: %d\n", height))
	sb.WriteString("WrapStyle: 0\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,%s,&H000000FF,%s,&H80000000,%d,0,0,0,100,100,%d,0,1,%d,%d,%d,40,40,%d,1\n\n",
		assFontName, assFontSize, assFontColor, assOutlineColor,
		bold, spacing, outline, assShadowDepth, assAlignment, assMarginBottom))

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, chunk := range chunkWords(words, wordsPerLine) {
		for wordIdx := range chunk {
			start := chunk[wordIdx].Start
			// the word stays highlighted until the next word begins
			end := chunk[wordIdx].End
			if wordIdx < len(chunk)-1 {
				end = chunk[wordIdx+1].Start
			}

			sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
				formatASSTime(start),
				formatASSTime(end),
				highlightLine(chunk, wordIdx, style)))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// splits the word stream into display groups
func chunkWords(words []transcribe.Word, size int) [][]transcribe.Word {
	var chunks [][]transcribe.Word
	for len(words) > 0 {
		n := size
		if n > len(words) {
			n = len(words)
		}
		chunks = append(chunks, words[:n])
		words = words[n:]
	}
	return chunks
}

// renders one caption line with the current word colored
func highlightLine(chunk []transcribe.Word, current int, style Style) string {
	parts := make([]string, len(chunk))
	for i, w := range chunk {
		text := strings.TrimSpace(w.Text)
		if style == StyleBoldCaps {
			text = strings.ToUpper(text)
		}
		if i == current {
			// ASS inline color override: {\c&HBBGGRR&}
			parts[i] = fmt.Sprintf("{\\c%s&}%s{\\c&HFFFFFF&}", assHighlightColor, text)
		} else {
			parts[i] = text
		}
	}
	return strings.Join(parts, " ")
}
