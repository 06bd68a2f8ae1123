package videoframe

import "fmt"

type Dimensions struct {
	W int `json:"width" yaml:"width"`
	H int `json:"height" yaml:"height"`
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.W, d.H)
}

// AspectRatio is width over height, zero for a degenerate frame.
func (d Dimensions) AspectRatio() float64 {
	if d.H == 0 {
		return 0
	}
	return float64(d.W) / float64(d.H)
}

type NoCloser interface {
	DataRef() interface{}
	Dimensions() Dimensions
	IsEmpty() bool
	// Resize returns a new frame scaled to exactly the given dimensions.
	Resize(Dimensions) (Frame, error)
	// Luminance returns a new single channel 8 bit copy of the frame.
	Luminance() (Frame, error)
	// MeanAbsDiff is the mean absolute per-pixel difference between two
	// luminance frames of equal size, on the 0-255 scale.
	MeanAbsDiff(NoCloser) (float64, error)
	// EncodeJPEG compresses the frame at the default quality.
	EncodeJPEG() ([]byte, error)
}

type Closer interface {
	Close()
}

type Frame interface {
	NoCloser
	Closer
}
