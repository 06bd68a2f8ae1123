package extract

import (
	"errors"
	"math"

	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/tauraamui/frameextract/pkg/video"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/frameextract/pkg/video/videoresize"
	"github.com/tauraamui/xerror"
)

const progressEvery = 100

// Scenes decodes every frame from the source's current position and
// captures each frame whose mean luminance difference from its predecessor
// exceeds threshold. A threshold of zero or less captures every frame after
// the first. An unreadable frame ends the scan with what was found so far.
func Scenes(src video.Source, threshold float64, c videoresize.Constraint) ([]FrameRecord, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, xerror.Errorf("%w: scene threshold must be finite, got %v", ErrInvalidParameters, threshold)
	}

	props := src.Properties()
	frame := src.NewFrame()
	defer frame.Close()

	var prev videoframe.Frame
	defer func() {
		if prev != nil {
			prev.Close()
		}
	}()

	records := []FrameRecord{}
	index := src.Position()
	for ; ; index++ {
		if err := src.Read(frame); err != nil {
			if !errors.Is(err, video.ErrEndOfStream) {
				log.Warn("Stopping scene scan at frame %d: %v", index, err)
			}
			break
		}

		luma, err := frame.Luminance()
		if err != nil {
			log.Warn("Stopping scene scan at frame %d: %v", index, err)
			break
		}

		if prev != nil {
			diff, err := luma.MeanAbsDiff(prev)
			if err != nil {
				luma.Close()
				log.Warn("Stopping scene scan at frame %d: %v", index, err)
				break
			}

			if threshold <= 0 || diff > threshold {
				record, err := capture(frame, index, float64(index)/props.FPS, c)
				if err != nil {
					log.Warn("Failed to encode scene change at frame %d: %v", index, err)
				} else {
					records = append(records, record)
					log.Info("Detected scene change at frame %d (%s), diff=%.2f", index, record.Timestamp, diff)
				}
			}
			prev.Close()
		}
		prev = luma

		if (index+1)%progressEvery == 0 {
			log.Debug("Processed %d/%d frames", index+1, props.FrameCount)
		}
	}

	log.Info("Detected %d scene changes over %d frames of %s", len(records), index, src.Path())
	return records, nil
}
