package extract_test

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/frameextract/pkg/extract"
	"github.com/tauraamui/frameextract/pkg/video"
	"github.com/tauraamui/frameextract/pkg/video/videocodec"
	"github.com/tauraamui/frameextract/pkg/video/videoresize"
)

func TestFrameIndicesEvenlySpacedTruncated(t *testing.T) {
	is := is.New(t)
	is.Equal(extract.FrameIndices(5, 300), []int{0, 74, 149, 224, 299})
}

func TestFrameIndicesSingleFrameIsFirst(t *testing.T) {
	is := is.New(t)
	is.Equal(extract.FrameIndices(1, 300), []int{0})
}

func TestFrameIndicesDegenerateVideoIsAllZero(t *testing.T) {
	is := is.New(t)
	is.Equal(extract.FrameIndices(4, 1), []int{0})
	is.Equal(extract.FrameIndices(4, 0), []int{0})
}

func TestFrameIndicesCollapseDuplicates(t *testing.T) {
	is := is.New(t)
	is.Equal(extract.FrameIndices(10, 3), []int{0, 1, 2})
}

func TestFrameIndicesStayInRangeAndNonDecreasing(t *testing.T) {
	is := is.New(t)
	for _, frameCount := range []int{1, 2, 7, 30, 299, 1000} {
		for numFrames := 1; numFrames <= 40; numFrames++ {
			indices := extract.FrameIndices(numFrames, frameCount)
			is.True(len(indices) <= numFrames)
			is.Equal(indices[0], 0)
			for i, index := range indices {
				is.True(index >= 0 && index <= frameCount-1)
				if i > 0 {
					is.True(index > indices[i-1])
				}
			}
		}
	}
}

func TestFrameIndicesRejectsZero(t *testing.T) {
	is := is.New(t)
	is.True(extract.FrameIndices(0, 100) == nil)
}

func TestKeyFramesTenSecondSolidVideo(t *testing.T) {
	is := is.New(t)
	backend := newFakeBackend(solid(300, 90), 30)
	src, err := video.Open("solid.mp4", backend)
	is.NoErr(err)
	defer src.Close()

	records, err := extract.KeyFrames(src, 5, videoresize.Constraint{})
	is.NoErr(err)
	is.Equal(len(records), 5)

	indices, timestamps := []int{}, []string{}
	for _, r := range records {
		indices = append(indices, r.Index)
		timestamps = append(timestamps, r.Timestamp)
		is.Equal(r.Width, 64)
		is.Equal(r.Height, 36)
	}
	is.Equal(indices, []int{0, 74, 149, 224, 299})
	is.Equal(timestamps, []string{"00:00:00", "00:00:02", "00:00:04", "00:00:07", "00:00:09"})
	is.Equal(backend.conn.seeks, []int{0, 74, 149, 224, 299})
}

func TestKeyFramesRecordsDecodeToReportedSize(t *testing.T) {
	is := is.New(t)
	backend := newFakeBackend(solid(30, 128), 30)
	src, err := video.Open("solid.mp4", backend)
	is.NoErr(err)
	defer src.Close()

	records, err := extract.KeyFrames(src, 3, videoresize.Constraint{Width: 32})
	is.NoErr(err)
	is.Equal(len(records), 3)

	for _, r := range records {
		raw, err := videocodec.DecodeMediaPrefix(r.Image)
		is.NoErr(err)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
		is.NoErr(err)
		is.Equal(cfg.Width, r.Width)
		is.Equal(cfg.Height, r.Height)
		is.Equal(r.Width, 32)
		is.Equal(r.Height, 18)
	}
}

func TestKeyFramesSkipsUnreadableFrameAndLogs(t *testing.T) {
	is := is.New(t)
	warnings := []string{}
	defer overloadWarnLog(func(format string, a ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, a...))
	})()

	backend := newFakeBackend(solid(300, 90), 30)
	backend.conn.unreadable[149] = true
	src, err := video.Open("solid.mp4", backend)
	is.NoErr(err)
	defer src.Close()

	records, err := extract.KeyFrames(src, 5, videoresize.Constraint{})
	is.NoErr(err)
	is.Equal(len(records), 4)
	is.Equal(records[2].Index, 224)
	is.Equal(len(warnings), 1)
	is.True(bytes.Contains([]byte(warnings[0]), []byte("position 149")))
}

func TestKeyFramesRejectsInvalidCount(t *testing.T) {
	is := is.New(t)
	src, err := video.Open("solid.mp4", newFakeBackend(solid(10, 1), 30))
	is.NoErr(err)
	defer src.Close()

	_, err = extract.KeyFrames(src, 0, videoresize.Constraint{})
	is.True(errors.Is(err, extract.ErrInvalidParameters))
}

func TestKeyFramesReleasesFrames(t *testing.T) {
	is := is.New(t)
	backend := newFakeBackend(solid(60, 40), 30)
	src, err := video.Open("solid.mp4", backend)
	is.NoErr(err)
	defer src.Close()

	_, err = extract.KeyFrames(src, 6, videoresize.Constraint{Height: 18})
	is.NoErr(err)
	is.Equal(backend.counter.live, 0)
}

func TestFormatTimestamp(t *testing.T) {
	is := is.New(t)
	is.Equal(extract.FormatTimestamp(0), "00:00:00")
	is.Equal(extract.FormatTimestamp(2.999), "00:00:02")
	is.Equal(extract.FormatTimestamp(3725.9), "01:02:05")
	is.Equal(extract.FormatTimestamp(-4), "00:00:00")
}
