package extract

import (
	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/tauraamui/frameextract/pkg/video"
	"github.com/tauraamui/frameextract/pkg/video/videoresize"
	"github.com/tauraamui/xerror"
)

// Timestamps captures exactly one frame per mark, in order. A mark's own
// target size overrides c. Any mark that cannot be read fails the whole
// call with an error wrapping video.ErrFrameRead.
func Timestamps(src video.Source, marks []*TimestampMark, c videoresize.Constraint) ([]FrameRecord, error) {
	if err := validateMarks(marks); err != nil {
		return nil, err
	}

	frame := src.NewFrame()
	defer frame.Close()

	records := make([]FrameRecord, 0, len(marks))
	for _, mark := range marks {
		constraint := c
		if mark.TargetSize != nil {
			constraint = videoresize.Constraint{Width: mark.TargetSize.W, Height: mark.TargetSize.H}
		}

		if err := src.SeekToTime(mark.Timestamp); err != nil {
			return nil, xerror.Errorf("%w: at timestamp %.3fs: %v", video.ErrFrameRead, mark.Timestamp, err)
		}
		if err := src.Read(frame); err != nil {
			return nil, xerror.Errorf("%w: at timestamp %.3fs: %v", video.ErrFrameRead, mark.Timestamp, err)
		}

		record, err := capture(frame, src.Position()-1, mark.Timestamp, constraint)
		if err != nil {
			return nil, xerror.Errorf("unable to encode frame at timestamp %.3fs: %w", mark.Timestamp, err)
		}
		record.Description = mark.Description
		mark.FramePath = record.Image

		records = append(records, record)
		log.Info("Captured frame at %.3fs (%s) %dx%d", mark.Timestamp, record.Timestamp, record.Width, record.Height)
	}

	log.Info("Captured %d frames at marked timestamps", len(records))
	return records, nil
}
