package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// serializable form of one scene, for the timing reports
type Record struct {
	ParagraphNum int     `json:"paragraph_num"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Duration     float64 `json:"duration"`
	Text         string  `json:"text"`
	MatchScore   float64 `json:"match_score"`
}

// converts scenes to their serializable records
func Records(scenes []Scene) []Record {
	records := make([]Record, len(scenes))
	for i, s := range scenes {
		records[i] = Record{
			ParagraphNum: s.ParagraphIndex,
			Start:        s.Start.Seconds(),
			End:          s.End.Seconds(),
			Duration:     s.Duration().Seconds(),
			Text:         s.Text,
			MatchScore:   s.MatchScore,
		}
	}
	return records
}

// writes the machine-readable timing report
func WriteJSON(w io.Writer, scenes []Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(scenes))
}

// writes the human-readable timing report
func WriteText(w io.Writer, scenes []Scene) error {
	for _, s := range scenes {
		if _, err := fmt.Fprintf(w, "Paragraph %d\n", s.ParagraphIndex); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Time: %.2fs - %.2fs (duration: %.2fs, score: %.2f)\n",
			s.Start.Seconds(), s.End.Seconds(), s.Duration().Seconds(), s.MatchScore); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Text: %s\n", s.Text); err != nil {
			return err
		}
		if _, err := io.WriteString(w, strings.Repeat("-", 80)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
