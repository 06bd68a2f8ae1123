// Package videoresize computes aspect preserving target sizes for frames
// and applies them.
package videoresize

import (
	"math"

	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

// Constraint bounds a frame's output size. A zero or negative field
// is treated as unset.
type Constraint struct {
	Width  int
	Height int
}

func (c Constraint) IsZero() bool {
	return c.Width <= 0 && c.Height <= 0
}

// Fit returns the size a frame of native dimensions should be scaled to
// under the constraint, keeping the native aspect ratio. When both bounds
// are set the tighter one wins.
func Fit(native videoframe.Dimensions, c Constraint) videoframe.Dimensions {
	if c.IsZero() || native.W <= 0 || native.H <= 0 {
		return native
	}

	ratio := native.AspectRatio()
	switch {
	case c.Width > 0 && c.Height > 0:
		if float64(c.Width)/float64(c.Height) > ratio {
			return videoframe.Dimensions{W: atLeastOne(float64(c.Height) * ratio), H: c.Height}
		}
		return videoframe.Dimensions{W: c.Width, H: atLeastOne(float64(c.Width) / ratio)}
	case c.Width > 0:
		return videoframe.Dimensions{W: c.Width, H: atLeastOne(float64(c.Width) / ratio)}
	default:
		return videoframe.Dimensions{W: atLeastOne(float64(c.Height) * ratio), H: c.Height}
	}
}

func atLeastOne(v float64) int {
	if r := int(math.Round(v)); r > 1 {
		return r
	}
	return 1
}

// Frame scales the frame under the constraint. When no scaling is needed
// the frame itself is returned, otherwise the result is a new frame the
// caller must close.
func Frame(frame videoframe.Frame, c Constraint) (videoframe.Frame, error) {
	native := frame.Dimensions()
	target := Fit(native, c)
	if target == native {
		return frame, nil
	}

	resized, err := frame.Resize(target)
	if err != nil {
		return nil, xerror.Errorf("unable to resize frame from %s to %s: %w", native, target, err)
	}
	return resized, nil
}
