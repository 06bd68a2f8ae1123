package extract

import (
	"fmt"
	"math"

	"github.com/tauraamui/frameextract/pkg/video/videocodec"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/frameextract/pkg/video/videoresize"
)

// FrameRecord is one extracted frame ready to embed in a document.
type FrameRecord struct {
	Index       int     `json:"frame_index" yaml:"frame_index"`
	Seconds     float64 `json:"seconds" yaml:"seconds"`
	Timestamp   string  `json:"timestamp" yaml:"timestamp"`
	Image       string  `json:"image" yaml:"image"`
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// TimestampMark requests the frame shown at an exact playback position.
// FramePath is filled in with the encoded frame once it is captured.
type TimestampMark struct {
	Timestamp   float64                `json:"timestamp" yaml:"timestamp"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	TargetSize  *videoframe.Dimensions `json:"target_size,omitempty" yaml:"target_size,omitempty"`
	FramePath   string                 `json:"frame_path,omitempty" yaml:"-"`
}

// FormatTimestamp renders whole elapsed seconds as HH:MM:SS.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func capture(frame videoframe.Frame, index int, seconds float64, c videoresize.Constraint) (FrameRecord, error) {
	out, err := videoresize.Frame(frame, c)
	if err != nil {
		return FrameRecord{}, err
	}
	if out != frame {
		defer out.Close()
	}

	enc, err := videocodec.Encode(out)
	if err != nil {
		return FrameRecord{}, err
	}

	return FrameRecord{
		Index:     index,
		Seconds:   seconds,
		Timestamp: FormatTimestamp(seconds),
		Image:     enc.Data,
		Width:     enc.Dimensions.W,
		Height:    enc.Dimensions.H,
	}, nil
}
