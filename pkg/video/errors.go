package video

import "errors"

var (
	ErrSourceUnavailable = errors.New("video source unavailable")
	ErrFrameRead         = errors.New("unable to read frame")
	ErrEndOfStream       = errors.New("end of video stream")
	ErrInvalidSeek       = errors.New("invalid seek target")
)
