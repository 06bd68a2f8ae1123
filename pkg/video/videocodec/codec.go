// Package videocodec turns frames into JPEG data URLs that can be embedded
// directly in JSON or HTML, and back into raw image bytes.
package videocodec

import (
	"encoding/base64"
	"strings"

	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

const MediaTypePrefix = "data:image/jpeg;base64,"

type Encoded struct {
	Data       string
	Dimensions videoframe.Dimensions
}

func Encode(frame videoframe.NoCloser) (Encoded, error) {
	if frame.IsEmpty() {
		return Encoded{}, xerror.New("cannot encode empty frame")
	}

	buf, err := frame.EncodeJPEG()
	if err != nil {
		return Encoded{}, err
	}

	return Encoded{
		Data:       MediaTypePrefix + base64.StdEncoding.EncodeToString(buf),
		Dimensions: frame.Dimensions(),
	}, nil
}

// StripMediaPrefix drops a leading "data:<type>;base64," marker, strings
// without one are returned unchanged.
func StripMediaPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

func DecodeMediaPrefix(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(StripMediaPrefix(s))
	if err != nil {
		return nil, xerror.Errorf("unable to decode base64 image payload: %w", err)
	}
	return raw, nil
}
