package videobackend

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// MockSegment is a run of identical solid colour frames.
type MockSegment struct {
	Frames int
	Color  color.RGBA
}

// MockScript describes the synthetic video served by the mock backend.
type MockScript struct {
	FPS        float64
	Width      int
	Height     int
	Segments   []MockSegment
	Unreadable []int
	Label      bool
	FailOpen   bool
}

// DefaultMockScript is ten seconds at 30fps split into three coloured scenes.
func DefaultMockScript() MockScript {
	return MockScript{
		FPS: 30, Width: 640, Height: 360,
		Segments: []MockSegment{
			{Frames: 100, Color: color.RGBA{R: 200, A: 255}},
			{Frames: 100, Color: color.RGBA{G: 200, A: 255}},
			{Frames: 100, Color: color.RGBA{B: 200, A: 255}},
		},
		Label: true,
	}
}

func (s MockScript) totalFrames() int {
	total := 0
	for _, seg := range s.Segments {
		total += seg.Frames
	}
	return total
}

func (s MockScript) colorAt(index int) color.RGBA {
	for _, seg := range s.Segments {
		if index < seg.Frames {
			return seg.Color
		}
		index -= seg.Frames
	}
	return color.RGBA{A: 255}
}

func MockWithScript(script MockScript) Backend {
	return &mockVideoBackend{script: script}
}

type mockVideoBackend struct {
	script MockScript
}

func (b *mockVideoBackend) Open(cancel context.Context, path string) (Connection, error) {
	select {
	case <-cancel.Done():
		return nil, xerror.New("video open cancelled")
	default:
	}
	if b.script.FailOpen {
		return nil, xerror.Errorf("mock video backend refused to open: %s", path)
	}

	unreadable := map[int]bool{}
	for _, i := range b.script.Unreadable {
		unreadable[i] = true
	}
	return &mockVideoConnection{
		script: b.script, total: b.script.totalFrames(), unreadable: unreadable, isOpen: true,
	}, nil
}

func (b *mockVideoBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type mockVideoConnection struct {
	uuid       string
	mu         sync.Mutex
	script     MockScript
	total      int
	unreadable map[int]bool
	pos        int
	isOpen     bool
}

func (mvc *mockVideoConnection) UUID() string {
	if len(mvc.uuid) == 0 {
		mvc.uuid = uuid.NewString()
	}
	return mvc.uuid
}

func (mvc *mockVideoConnection) FrameCount() int { return mvc.total }

func (mvc *mockVideoConnection) FPS() float64 { return mvc.script.FPS }

func (mvc *mockVideoConnection) SeekToFrame(index int) error {
	mvc.mu.Lock()
	defer mvc.mu.Unlock()
	mvc.pos = index
	return nil
}

func (mvc *mockVideoConnection) SeekToMillis(ms float64) error {
	mvc.mu.Lock()
	defer mvc.mu.Unlock()
	mvc.pos = int(math.Floor(ms*mvc.script.FPS/1000 + 1e-6))
	return nil
}

func (mvc *mockVideoConnection) Read(frame videoframe.Frame) error {
	frameMatRef, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to MockVideo connection read")
	}

	mvc.mu.Lock()
	defer mvc.mu.Unlock()
	if !mvc.isOpen {
		return xerror.New("cannot read from closed video connection")
	}

	index := mvc.pos
	if index < 0 || index >= mvc.total {
		return xerror.New("unable to read from video connection")
	}
	mvc.pos++
	if mvc.unreadable[index] {
		return xerror.Errorf("mock frame %d is unreadable", index)
	}

	img, err := renderFrame(mvc.script, index)
	if err != nil {
		return err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return xerror.Errorf("unable to convert Go image into OpenCV mat: %w", err)
	}
	defer mat.Close()

	mat.CopyTo(frameMatRef)
	return nil
}

func (mvc *mockVideoConnection) IsOpen() bool {
	mvc.mu.Lock()
	defer mvc.mu.Unlock()
	return mvc.isOpen
}

func (mvc *mockVideoConnection) Close() error {
	mvc.mu.Lock()
	defer mvc.mu.Unlock()
	mvc.isOpen = false
	return nil
}

func renderFrame(script MockScript, index int) (image.Image, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, script.Width, script.Height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: script.colorAt(index)}, image.Point{}, draw.Src)
	if !script.Label {
		return canvas, nil
	}

	if err := drawText(canvas, 5, 50, fmt.Sprintf("FRAME %05d", index)); err != nil {
		return nil, xerror.Errorf("unable to draw text onto in-mem image for mock video: %w", err)
	}
	return canvas, nil
}

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

func drawText(canvas *image.RGBA, x, y int, text string) error {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = freetype.ParseFont(goregular.TTF)
	})
	if labelFontErr != nil {
		return labelFontErr
	}

	fontDrawer := &font.Drawer{
		Dst: canvas,
		Src: image.White,
		Face: truetype.NewFace(labelFont, &truetype.Options{
			Size:    32,
			Hinting: font.HintingFull,
		}),
	}
	textBounds, _ := fontDrawer.BoundString(text)
	textHeight := textBounds.Max.Y - textBounds.Min.Y
	yPosition := fixed.I((y)-textHeight.Ceil())/2 + fixed.I(textHeight.Ceil())
	fontDrawer.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: yPosition,
	}
	fontDrawer.DrawString(text)
	return nil
}
