package audio

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// media file information from ffprobe
type Info struct {
	Duration time.Duration
	Width    int
	Height   int
}

// ffprobe JSON output
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// duration of an audio/video file
func GetDuration(filePath string) (time.Duration, error) {
	info, err := Probe(filePath)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

// probes a media file for duration and video dimensions
func Probe(filePath string) (*Info, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	raw, err := ffmpeg.Probe(filePath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{}

	if out.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, s := range out.Streams {
		if s.CodecType == "video" && s.Width > 0 && s.Height > 0 {
			info.Width = s.Width
			info.Height = s.Height
			break
		}
	}

	return info, nil
}
