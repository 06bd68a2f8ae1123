package extract

import (
	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/tauraamui/frameextract/pkg/video"
	"github.com/tauraamui/frameextract/pkg/video/videoresize"
	"github.com/tauraamui/xerror"
)

// FrameIndices spreads numFrames positions evenly over [0, frameCount-1],
// truncating each to a whole frame index. Repeated indices are dropped.
func FrameIndices(numFrames, frameCount int) []int {
	if numFrames < 1 {
		return nil
	}
	if numFrames == 1 {
		return []int{0}
	}

	last := frameCount - 1
	if last < 0 {
		last = 0
	}

	step := float64(last) / float64(numFrames-1)
	indices := make([]int, 0, numFrames)
	for i := 0; i < numFrames; i++ {
		index := int(float64(i) * step)
		if i == numFrames-1 {
			index = last
		}
		if n := len(indices); n > 0 && indices[n-1] == index {
			continue
		}
		indices = append(indices, index)
	}
	return indices
}

// KeyFrames captures numFrames evenly spaced frames. Frames which cannot be
// sought, read or encoded are logged and skipped.
func KeyFrames(src video.Source, numFrames int, c videoresize.Constraint) ([]FrameRecord, error) {
	if numFrames < 1 {
		return nil, xerror.Errorf("%w: number of frames must be at least 1, got %d", ErrInvalidParameters, numFrames)
	}

	props := src.Properties()
	indices := FrameIndices(numFrames, props.FrameCount)
	log.Debug("Frame positions to extract: %v", indices)

	frame := src.NewFrame()
	defer frame.Close()

	records := []FrameRecord{}
	for _, index := range indices {
		if err := src.SeekToFrame(index); err != nil {
			log.Warn("Failed to seek to frame at position %d: %v", index, err)
			continue
		}
		if err := src.Read(frame); err != nil {
			log.Warn("Failed to read frame at position %d: %v", index, err)
			continue
		}

		record, err := capture(frame, index, float64(index)/props.FPS, c)
		if err != nil {
			log.Warn("Failed to encode frame at position %d: %v", index, err)
			continue
		}
		records = append(records, record)
		log.Info("Extracted frame at position %d (%s)", index, record.Timestamp)
	}

	log.Info("Extracted %d frames total from %s", len(records), src.Path())
	return records, nil
}
