// Package align locates each transcript paragraph inside the timestamped
// word stream produced by speech recognition.
//
// The written transcript and the recognized words rarely agree exactly:
// wording, punctuation, and segmentation all drift. A single global
// edit-distance alignment over the two token sequences gives every paragraph
// a monotonic, non-crossing span in the audio plus a confidence score.
package align

import (
	"time"

	"github.com/rajivraghu/video-maker/internal/transcribe"
	"github.com/rajivraghu/video-maker/internal/transcript"
)

// match score thresholds callers use to surface alignment quality
const (
	ScoreExcellent  = 0.8
	ScoreAcceptable = 0.6
)

// raw time window for one paragraph, before timeline normalization
type Span struct {
	ParagraphIndex int
	Start          time.Duration
	End            time.Duration
	MatchScore     float64 // fraction of the paragraph's words found in the stream
}

// human-readable quality label for a match score
func ScoreLabel(score float64) string {
	switch {
	case score >= ScoreExcellent:
		return "excellent"
	case score >= ScoreAcceptable:
		return "acceptable"
	default:
		return "review"
	}
}

// one transcript token tagged with its owning paragraph
type taggedToken struct {
	text      string // normalized
	paragraph int    // 0-based position in the paragraphs slice
}

// Paragraphs aligns every paragraph against the word stream in one pass.
//
// The whole transcript is treated as a single token sequence so that spans
// can never cross: paragraph k's words always map at or after paragraph
// k-1's words. A paragraph whose tokens all went unmatched gets a
// zero-length span at the previous paragraph's end and a score of 0; the
// timeline normalizer repairs those.
func Paragraphs(paragraphs []transcript.Paragraph, words []transcribe.Word) []Span {
	tokens := make([]taggedToken, 0, 64)
	for pi, p := range paragraphs {
		for _, t := range transcript.Tokenize(p.Text) {
			tokens = append(tokens, taggedToken{text: t, paragraph: pi})
		}
	}

	normWords := make([]string, len(words))
	for i, w := range words {
		normWords[i] = transcript.Normalize(w.Text)
	}

	pairs := alignTokens(tokens, normWords)

	// Per-paragraph word index bounds and mapped-token counts.
	first := make([]int, len(paragraphs))
	last := make([]int, len(paragraphs))
	mapped := make([]int, len(paragraphs))
	for i := range first {
		first[i] = -1
		last[i] = -1
	}
	for _, pr := range pairs {
		pi := tokens[pr.token].paragraph
		if first[pi] < 0 {
			first[pi] = pr.word
		}
		last[pi] = pr.word
		mapped[pi]++
	}

	spans := make([]Span, len(paragraphs))
	var prevEnd time.Duration
	for i, p := range paragraphs {
		span := Span{ParagraphIndex: p.Index}

		if first[i] >= 0 {
			span.Start = words[first[i]].Start
			span.End = words[last[i]].End
		} else {
			// nothing matched: degenerate bounds at the previous end
			span.Start = prevEnd
			span.End = prevEnd
		}

		if p.WordCount > 0 {
			span.MatchScore = float64(mapped[i]) / float64(p.WordCount)
			if span.MatchScore > 1 {
				span.MatchScore = 1
			}
		}

		spans[i] = span
		prevEnd = span.End
	}

	return spans
}

// one exact-match correspondence between a transcript token and a word
type matchPair struct {
	token int
	word  int
}

// dp move markers for the traceback
const (
	moveDiag = 1 // match or substitution
	moveUp   = 2 // transcript token unmatched (deletion)
	moveLeft = 3 // recognized word unmatched (insertion)
)

// alignTokens runs the global edit-distance dynamic program and returns the
// exact-match pairs of the optimal alignment, ordered by token index.
//
// Costs: exact match 0, substitution 1, insertion/deletion 1. Ties prefer
// diagonal continuation, which keeps spans compact and the result
// deterministic. O(T*W) time and space.
func alignTokens(tokens []taggedToken, words []string) []matchPair {
	t, w := len(tokens), len(words)
	if t == 0 || w == 0 {
		return nil
	}

	cols := w + 1
	cost := make([]int32, (t+1)*cols)
	move := make([]int8, (t+1)*cols)

	for j := 1; j <= w; j++ {
		cost[j] = int32(j)
		move[j] = moveLeft
	}
	for i := 1; i <= t; i++ {
		cost[i*cols] = int32(i)
		move[i*cols] = moveUp
	}

	for i := 1; i <= t; i++ {
		row := i * cols
		prevRow := row - cols
		for j := 1; j <= w; j++ {
			sub := cost[prevRow+j-1]
			if tokens[i-1].text != words[j-1] {
				sub++
			}
			up := cost[prevRow+j] + 1
			left := cost[row+j-1] + 1

			best, m := sub, int8(moveDiag)
			if up < best {
				best, m = up, moveUp
			}
			if left < best {
				best, m = left, moveLeft
			}
			cost[row+j] = best
			move[row+j] = m
		}
	}

	// Traceback; pairs come out in reverse order.
	var rev []matchPair
	i, j := t, w
	for i > 0 || j > 0 {
		switch move[i*cols+j] {
		case moveDiag:
			if tokens[i-1].text == words[j-1] {
				rev = append(rev, matchPair{token: i - 1, word: j - 1})
			}
			i--
			j--
		case moveUp:
			i--
		default:
			j--
		}
	}

	pairs := make([]matchPair, len(rev))
	for k := range rev {
		pairs[k] = rev[len(rev)-1-k]
	}
	return pairs
}
