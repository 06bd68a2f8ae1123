// Package extract selects representative frames from a video by uniform
// sampling, scene change detection or explicit timestamps.
package extract

import (
	"context"
	"math"
	"strings"

	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/tauraamui/frameextract/pkg/video"
	"github.com/tauraamui/frameextract/pkg/video/videobackend"
	"github.com/tauraamui/frameextract/pkg/video/videoresize"
	"github.com/tauraamui/xerror"
	"gopkg.in/dealancer/validate.v2"
)

type Mode string

const (
	ModeKeyFrames  Mode = "keyframes"
	ModeScenes     Mode = "scenes"
	ModeTimestamps Mode = "timestamps"
)

const (
	DefaultNumFrames      = 5
	DefaultSceneThreshold = 30.0
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeKeyFrames, ModeScenes, ModeTimestamps:
		return m, nil
	}
	return "", xerror.Errorf("%w: unknown mode %q, expected keyframes, scenes or timestamps", ErrInvalidParameters, s)
}

type Options struct {
	Mode      Mode `validate:"one_of=keyframes,scenes,timestamps"`
	NumFrames int
	Threshold float64
	Marks     []*TimestampMark
	MaxWidth  int `validate:"gte=0"`
	MaxHeight int `validate:"gte=0"`
}

func DefaultOptions() Options {
	return Options{Mode: ModeKeyFrames, NumFrames: DefaultNumFrames, Threshold: DefaultSceneThreshold}
}

func (o Options) Validate() error {
	if err := validate.Validate(o); err != nil {
		return xerror.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	switch o.Mode {
	case ModeKeyFrames:
		if o.NumFrames < 1 {
			return xerror.Errorf("%w: number of frames must be at least 1, got %d", ErrInvalidParameters, o.NumFrames)
		}
	case ModeScenes:
		if math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) {
			return xerror.Errorf("%w: scene threshold must be finite, got %v", ErrInvalidParameters, o.Threshold)
		}
	case ModeTimestamps:
		return validateMarks(o.Marks)
	}
	return nil
}

func (o Options) constraint() videoresize.Constraint {
	return videoresize.Constraint{Width: o.MaxWidth, Height: o.MaxHeight}
}

type Extractor struct {
	backend videobackend.Backend
}

func New(backend videobackend.Backend) *Extractor {
	return &Extractor{backend: backend}
}

// Extract opens the video at path, runs the sampler chosen by opts.Mode and
// releases the video before returning. Source level failures abort the call;
// an empty result is returned without error but logged as a warning.
func (e *Extractor) Extract(ctx context.Context, path string, opts Options) ([]FrameRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log.Info("Processing video: %s", path)
	log.Info("Mode: %s", opts.Mode)

	src, err := video.OpenWithCancel(ctx, path, e.backend)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Error("Unable to release video %s: %v", src.Path(), err)
		}
	}()

	records, err := e.run(src, opts)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		log.Warn("No frames were extracted from %s", path)
	}
	return records, nil
}

func (e *Extractor) run(src video.Source, opts Options) ([]FrameRecord, error) {
	switch opts.Mode {
	case ModeScenes:
		log.Info("Threshold: %.2f", opts.Threshold)
		return Scenes(src, opts.Threshold, opts.constraint())
	case ModeTimestamps:
		return Timestamps(src, opts.Marks, opts.constraint())
	default:
		log.Info("Num frames: %d", opts.NumFrames)
		return KeyFrames(src, opts.NumFrames, opts.constraint())
	}
}
