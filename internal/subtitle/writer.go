package subtitle

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// writes entries in the SubRip interchange format
func WriteSRT(w io.Writer, entries []Entry) error {
	var sb strings.Builder
	for _, entry := range entries {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(entry.StartTime),
			formatSRTTime(entry.EndTime)))

		// text
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatSRTTime(d time.Duration) string {
	d = d.Round(time.Millisecond)
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	millis := int(d/time.Millisecond) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func formatASSTime(d time.Duration) string {
	d = d.Round(10 * time.Millisecond)
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	centis := int(d/(10*time.Millisecond)) % 100

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
