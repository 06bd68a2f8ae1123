package videotest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tauraamui/frameextract/pkg/video/videobackend"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

const codec = "MJPG"

var openVideoWriter = func(filename, codec string, fps float64, width, height int, isColor bool) (*gocv.VideoWriter, error) {
	return gocv.VideoWriterFile(filename, codec, fps, width, height, isColor)
}

// WriteVideo renders every frame of the script into an MJPG encoded AVI
// file inside a new temp directory. Callers remove the returned directory.
func WriteVideo(script videobackend.MockScript) (dir, path string, err error) {
	dir, err = os.MkdirTemp("", "frameextract-videotest-")
	if err != nil {
		return "", "", err
	}
	path = filepath.Join(dir, "synthetic.avi")

	if err := writeVideo(path, script); err != nil {
		os.RemoveAll(dir)
		return "", "", err
	}
	return dir, path, nil
}

func writeVideo(path string, script videobackend.MockScript) error {
	script.Unreadable = nil
	script.FailOpen = false
	backend := videobackend.MockWithScript(script)

	conn, err := backend.Open(context.Background(), path)
	if err != nil {
		return err
	}
	defer conn.Close()

	vw, err := openVideoWriter(path, codec, script.FPS, script.Width, script.Height, true)
	if err != nil {
		return xerror.Errorf("unable to open video writer: %w", err)
	}
	defer vw.Close()

	frame := backend.NewFrame()
	defer frame.Close()
	for i := 0; i < conn.FrameCount(); i++ {
		if err := conn.Read(frame); err != nil {
			return err
		}
		mat, ok := frame.DataRef().(*gocv.Mat)
		if !ok {
			return xerror.New("must pass OpenCV frame to OpenCV writer")
		}
		if err := vw.Write(*mat); err != nil {
			return xerror.Errorf("unable to write frame %d: %w", i, err)
		}
	}
	return nil
}
