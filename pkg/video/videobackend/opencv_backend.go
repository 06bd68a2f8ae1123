package videobackend

import (
	"context"
	"image"
	"sync"

	"github.com/google/uuid"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVFrame struct {
	isClosed bool
	mat      gocv.Mat
}

func (frame *openCVFrame) DataRef() interface{} {
	return &frame.mat
}

func (frame *openCVFrame) Dimensions() videoframe.Dimensions {
	return videoframe.Dimensions{W: frame.mat.Cols(), H: frame.mat.Rows()}
}

func (frame *openCVFrame) IsEmpty() bool {
	return frame.isClosed || frame.mat.Empty()
}

func (frame *openCVFrame) Resize(d videoframe.Dimensions) (videoframe.Frame, error) {
	if frame.IsEmpty() {
		return nil, xerror.New("cannot resize empty frame")
	}
	if d.W <= 0 || d.H <= 0 {
		return nil, xerror.Errorf("invalid resize target: %s", d)
	}

	// area interpolation for shrinking, linear when growing
	interp := gocv.InterpolationArea
	if d.W > frame.mat.Cols() || d.H > frame.mat.Rows() {
		interp = gocv.InterpolationLinear
	}

	dst := gocv.NewMat()
	gocv.Resize(frame.mat, &dst, image.Pt(d.W, d.H), 0, 0, interp)
	return &openCVFrame{mat: dst}, nil
}

func (frame *openCVFrame) Luminance() (videoframe.Frame, error) {
	if frame.IsEmpty() {
		return nil, xerror.New("cannot convert empty frame")
	}

	dst := gocv.NewMat()
	switch frame.mat.Channels() {
	case 1:
		frame.mat.CopyTo(&dst)
	case 3:
		gocv.CvtColor(frame.mat, &dst, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(frame.mat, &dst, gocv.ColorBGRAToGray)
	default:
		dst.Close()
		return nil, xerror.Errorf("unsupported frame channel count: %d", frame.mat.Channels())
	}
	return &openCVFrame{mat: dst}, nil
}

func (frame *openCVFrame) MeanAbsDiff(other videoframe.NoCloser) (float64, error) {
	otherMat, ok := other.DataRef().(*gocv.Mat)
	if !ok {
		return 0, xerror.New("must pass OpenCV frame to OpenCV frame diff")
	}
	if frame.mat.Channels() != 1 || otherMat.Channels() != 1 {
		return 0, xerror.New("frame diff expects single channel frames")
	}
	if frame.mat.Rows() != otherMat.Rows() || frame.mat.Cols() != otherMat.Cols() {
		return 0, xerror.Errorf(
			"frame diff size mismatch: %s != %s", frame.Dimensions(), other.Dimensions(),
		)
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(frame.mat, *otherMat, &diff)
	return diff.Mean().Val1, nil
}

func (frame *openCVFrame) EncodeJPEG() ([]byte, error) {
	if frame.IsEmpty() {
		return nil, xerror.New("cannot encode empty frame")
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame.mat)
	if err != nil {
		return nil, xerror.Errorf("unable to encode frame as jpeg: %w", err)
	}
	return buf, nil
}

func (frame *openCVFrame) Close() {
	if !frame.isClosed {
		frame.mat.Close()
		frame.isClosed = true
	}
}

type openCVBackend struct{}

func (b *openCVBackend) Open(cancel context.Context, path string) (Connection, error) {
	conn := openCVConnection{}
	err := conn.open(cancel, path)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (b *openCVBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type openCVConnection struct {
	uuid       string
	mu         sync.Mutex
	isOpen     bool
	vc         *gocv.VideoCapture
	frameCount int
	fps        float64
}

func (c *openCVConnection) open(cancel context.Context, path string) error {
	if _, err := fs.Stat(path); err != nil {
		return xerror.Errorf("unable to access video file: %w", err)
	}

	connAndError := make(chan openVideoFileResult)
	go openVideoFile(path, connAndError)
	select {
	case r := <-connAndError:
		if r.err != nil {
			if r.vc != nil {
				r.vc.Close()
			}
			return r.err
		}
		c.vc = r.vc
		c.frameCount = int(r.vc.Get(gocv.VideoCaptureFrameCount))
		c.fps = r.vc.Get(gocv.VideoCaptureFPS)
		c.isOpen = true
		return nil
	case <-cancel.Done():
		go releaseAbandonedOpen(connAndError)
		return xerror.New("video open cancelled")
	}
}

type openVideoFileResult struct {
	vc  *gocv.VideoCapture
	err error
}

func openVideoFile(path string, d chan openVideoFileResult) {
	vc, err := openVideoCapture(path)
	d <- openVideoFileResult{vc: vc, err: err}
}

func releaseAbandonedOpen(d chan openVideoFileResult) {
	if r := <-d; r.vc != nil {
		r.vc.Close()
	}
}

var openVideoCapture = func(path string) (*gocv.VideoCapture, error) {
	return gocv.VideoCaptureFile(path)
}

var readFromVideoCapture = func(vc *gocv.VideoCapture, mat *gocv.Mat) bool {
	if vc.IsOpened() {
		return vc.Read(mat)
	}
	return false
}

func (c *openCVConnection) UUID() string {
	if len(c.uuid) == 0 {
		c.uuid = uuid.NewString()
	}
	return c.uuid
}

func (c *openCVConnection) FrameCount() int { return c.frameCount }

func (c *openCVConnection) FPS() float64 { return c.fps }

func (c *openCVConnection) SeekToFrame(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return xerror.New("cannot seek closed video connection")
	}
	c.vc.Set(gocv.VideoCapturePosFrames, float64(index))
	return nil
}

func (c *openCVConnection) SeekToMillis(ms float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return xerror.New("cannot seek closed video connection")
	}
	c.vc.Set(gocv.VideoCapturePosMsec, ms)
	return nil
}

func (c *openCVConnection) Read(frame videoframe.Frame) error {
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to OpenCV connection read")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return xerror.New("cannot read from closed video connection")
	}
	ok = readFromVideoCapture(c.vc, mat)
	if !ok || mat.Empty() {
		return xerror.New("unable to read from video connection")
	}
	return nil
}

func (c *openCVConnection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isOpen {
		return c.vc.IsOpened()
	}
	return false
}

func (c *openCVConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return nil
	}
	c.isOpen = false
	return c.vc.Close()
}
