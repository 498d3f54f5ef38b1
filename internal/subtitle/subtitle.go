package subtitle

import (
	"strings"
	"time"

	"github.com/rajivraghu/video-maker/internal/timeline"
)

// represents single caption entry, quantized to whole milliseconds
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// caption rendering style
type Style string

const (
	StyleDefault  Style = "default"   // word-by-word highlighting
	StyleBoldCaps Style = "bold_caps" // all caps with word highlighting
	StyleNone     Style = "none"      // no captions
)

// FromScenes converts the normalized timeline into caption entries, one per
// scene in order, with no merging or reflow. Text is the paragraph's
// original text.
func FromScenes(scenes []timeline.Scene, style Style) []Entry {
	entries := make([]Entry, len(scenes))
	for i, scene := range scenes {
		text := scene.Text
		if style == StyleBoldCaps {
			text = strings.ToUpper(text)
		}
		entries[i] = Entry{
			Index:     i + 1,
			StartTime: scene.Start.Round(time.Millisecond),
			EndTime:   scene.End.Round(time.Millisecond),
			Text:      text,
		}
	}
	return entries
}
