package videobackend

import (
	"context"

	"github.com/spf13/afero"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
)

var fs = afero.NewOsFs()

type Connection interface {
	UUID() string
	FrameCount() int
	FPS() float64
	SeekToFrame(int) error
	SeekToMillis(float64) error
	Read(videoframe.Frame) error
	IsOpen() bool
	Close() error
}

type Backend interface {
	Open(context.Context, string) (Connection, error)
	NewFrame() videoframe.Frame
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

func Mock() Backend {
	return MockWithScript(DefaultMockScript())
}

func Resolve(t string) Backend {
	switch t {
	case "mock":
		return Mock()
	default:
		return Default()
	}
}
