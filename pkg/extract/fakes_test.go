package extract_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"

	"github.com/tauraamui/frameextract/pkg/video/videobackend"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
)

// frameCounter tracks how many fake frames are alive at once.
type frameCounter struct {
	live, peak int
}

func (c *frameCounter) alloc() {
	c.live++
	if c.live > c.peak {
		c.peak = c.live
	}
}

type fakeFrame struct {
	counter  *frameCounter
	dims     videoframe.Dimensions
	level    uint8
	isClosed bool
}

func (f *fakeFrame) DataRef() interface{}              { return f }
func (f *fakeFrame) Dimensions() videoframe.Dimensions { return f.dims }
func (f *fakeFrame) IsEmpty() bool                     { return f.isClosed || f.dims.W == 0 || f.dims.H == 0 }

func (f *fakeFrame) Resize(d videoframe.Dimensions) (videoframe.Frame, error) {
	f.counter.alloc()
	return &fakeFrame{counter: f.counter, dims: d, level: f.level}, nil
}

func (f *fakeFrame) Luminance() (videoframe.Frame, error) {
	f.counter.alloc()
	return &fakeFrame{counter: f.counter, dims: f.dims, level: f.level}, nil
}

func (f *fakeFrame) MeanAbsDiff(other videoframe.NoCloser) (float64, error) {
	o, ok := other.DataRef().(*fakeFrame)
	if !ok {
		return 0, errors.New("must pass fake frame to fake frame diff")
	}
	return math.Abs(float64(f.level) - float64(o.level)), nil
}

func (f *fakeFrame) EncodeJPEG() ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, f.dims.W, f.dims.H))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Gray{Y: f.level}}, image.Point{}, draw.Src)
	buf := bytes.Buffer{}
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *fakeFrame) Close() {
	if !f.isClosed {
		f.isClosed = true
		f.counter.live--
	}
}

type fakeConnection struct {
	levels     []uint8
	unreadable map[int]bool
	fps        float64
	dims       videoframe.Dimensions
	pos        int
	closeCalls int
	seeks      []int
}

func (c *fakeConnection) UUID() string    { return "fake-conn-uuid" }
func (c *fakeConnection) FrameCount() int { return len(c.levels) }
func (c *fakeConnection) FPS() float64    { return c.fps }
func (c *fakeConnection) IsOpen() bool    { return c.closeCalls == 0 }
func (c *fakeConnection) Close() error    { c.closeCalls++; return nil }
func (c *fakeConnection) SeekToFrame(i int) error {
	c.seeks = append(c.seeks, i)
	c.pos = i
	return nil
}

func (c *fakeConnection) SeekToMillis(ms float64) error {
	c.pos = int(math.Floor(ms*c.fps/1000 + 1e-6))
	return nil
}

func (c *fakeConnection) Read(frame videoframe.Frame) error {
	f, ok := frame.DataRef().(*fakeFrame)
	if !ok {
		return errors.New("must pass fake frame to fake connection read")
	}
	if c.pos < 0 || c.pos >= len(c.levels) {
		return errors.New("no more frames")
	}
	index := c.pos
	c.pos++
	if c.unreadable[index] {
		return errors.New("corrupt frame")
	}
	f.dims, f.level = c.dims, c.levels[index]
	return nil
}

type fakeBackend struct {
	conn    *fakeConnection
	counter *frameCounter
	openErr error
	opened  int
}

func (b *fakeBackend) Open(context.Context, string) (videobackend.Connection, error) {
	b.opened++
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.conn, nil
}

func (b *fakeBackend) NewFrame() videoframe.Frame {
	b.counter.alloc()
	return &fakeFrame{counter: b.counter}
}

// newFakeBackend serves a video whose frame i has uniform luminance levels[i].
func newFakeBackend(levels []uint8, fps float64) *fakeBackend {
	return &fakeBackend{
		conn: &fakeConnection{
			levels: levels, fps: fps, unreadable: map[int]bool{},
			dims: videoframe.Dimensions{W: 64, H: 36},
		},
		counter: &frameCounter{},
	}
}

func solid(n int, level uint8) []uint8 {
	levels := make([]uint8, n)
	for i := range levels {
		levels[i] = level
	}
	return levels
}

func concat(runs ...[]uint8) []uint8 {
	out := []uint8{}
	for _, r := range runs {
		out = append(out, r...)
	}
	return out
}
