package video

import (
	"context"
	"math"
	"sync"

	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/tauraamui/frameextract/pkg/video/videobackend"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

type Properties struct {
	FrameCount int
	FPS        float64
}

func (p Properties) DurationSeconds() float64 {
	if p.FPS <= 0 {
		return 0
	}
	return float64(p.FrameCount) / p.FPS
}

// Source is an open video file. It is not safe for concurrent use and
// must be closed exactly once by whoever opened it.
type Source interface {
	UUID() string
	Path() string
	Properties() Properties
	NewFrame() videoframe.Frame
	SeekToFrame(int) error
	SeekToTime(float64) error
	// Read decodes the next frame into the given frame. Errors wrap
	// ErrEndOfStream once the stream is exhausted and ErrFrameRead otherwise.
	Read(videoframe.Frame) error
	Position() int
	Close() error
}

type source struct {
	path    string
	backend videobackend.Backend
	conn    videobackend.Connection
	props   Properties
	pos     int
	mu      sync.Mutex
	closed  bool
}

func open(ctx context.Context, path string, backend videobackend.Backend) (Source, error) {
	if len(path) == 0 {
		return nil, xerror.Errorf("%w: video path is empty", ErrSourceUnavailable)
	}

	conn, err := backend.Open(ctx, path)
	if err != nil {
		return nil, xerror.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	props := Properties{FrameCount: conn.FrameCount(), FPS: conn.FPS()}
	if props.FPS <= 0 || math.IsNaN(props.FPS) || math.IsInf(props.FPS, 0) {
		conn.Close()
		return nil, xerror.Errorf("%w: %s: not a decodable video, frame rate is %v", ErrSourceUnavailable, path, props.FPS)
	}
	if props.FrameCount < 0 {
		props.FrameCount = 0
	}

	log.Info(
		"Opened video [%s] %s: frames=%d, fps=%.2f, duration=%.2fs",
		conn.UUID(), path, props.FrameCount, props.FPS, props.DurationSeconds(),
	)

	return &source{path: path, backend: backend, conn: conn, props: props}, nil
}

func Open(path string, backend videobackend.Backend) (Source, error) {
	return open(context.Background(), path, backend)
}

func OpenWithCancel(cancel context.Context, path string, backend videobackend.Backend) (Source, error) {
	return open(cancel, path, backend)
}

func (s *source) UUID() string { return s.conn.UUID() }

func (s *source) Path() string { return s.path }

func (s *source) Properties() Properties { return s.props }

func (s *source) NewFrame() videoframe.Frame { return s.backend.NewFrame() }

func (s *source) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *source) SeekToFrame(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.props.FrameCount {
		return xerror.Errorf("%w: frame %d outside [0, %d)", ErrInvalidSeek, index, s.props.FrameCount)
	}
	if err := s.conn.SeekToFrame(index); err != nil {
		return xerror.Errorf("%w: frame %d: %v", ErrInvalidSeek, index, err)
	}
	s.pos = index
	return nil
}

func (s *source) SeekToTime(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return xerror.Errorf("%w: time %vs", ErrInvalidSeek, seconds)
	}
	ms := math.Round(seconds * 1000)
	target := int(math.Floor(ms*s.props.FPS/1000 + 1e-6))
	if s.props.FrameCount > 0 && target >= s.props.FrameCount {
		return xerror.Errorf(
			"%w: time %.3fs past end of video (%.3fs)", ErrInvalidSeek, seconds, s.props.DurationSeconds(),
		)
	}
	if err := s.conn.SeekToMillis(ms); err != nil {
		return xerror.Errorf("%w: time %.3fs: %v", ErrInvalidSeek, seconds, err)
	}
	s.pos = target
	return nil
}

func (s *source) Read(frame videoframe.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return xerror.Errorf("%w: source is closed", ErrFrameRead)
	}

	if err := s.conn.Read(frame); err != nil {
		if s.props.FrameCount == 0 || s.pos >= s.props.FrameCount {
			return xerror.Errorf("%w: after frame %d", ErrEndOfStream, s.pos)
		}
		// the decoder has moved past the broken frame
		s.pos++
		return xerror.Errorf("%w: frame %d: %v", ErrFrameRead, s.pos-1, err)
	}
	s.pos++
	return nil
}

func (s *source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	log.Debug("Releasing video [%s] %s", s.conn.UUID(), s.path)
	return s.conn.Close()
}
