package configdef

import (
	"fmt"
	"math"

	"gopkg.in/dealancer/validate.v2"
)

type Extraction struct {
	Mode      string  `json:"mode" env:"FRAMEEXTRACT_MODE, overwrite" validate:"one_of=keyframes,scenes,timestamps"`
	NumFrames int     `json:"num_frames" env:"FRAMEEXTRACT_NUM_FRAMES, overwrite" validate:"gte=1"`
	Threshold float64 `json:"scene_threshold" env:"FRAMEEXTRACT_SCENE_THRESHOLD, overwrite"`
	MaxWidth  int     `json:"max_width" env:"FRAMEEXTRACT_MAX_WIDTH, overwrite" validate:"gte=0"`
	MaxHeight int     `json:"max_height" env:"FRAMEEXTRACT_MAX_HEIGHT, overwrite" validate:"gte=0"`
}

type Values struct {
	LogLevel   string     `json:"log_level" env:"FRAMEEXTRACT_LOG_LEVEL, overwrite" validate:"one_of=silent,debug,info,warn,error"`
	Backend    string     `json:"backend" env:"FRAMEEXTRACT_BACKEND, overwrite" validate:"one_of=opencv,mock"`
	Extraction Extraction `json:"extraction"`
}

func (v Values) RunValidate() error {
	if err := validate.Validate(v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if math.IsNaN(v.Extraction.Threshold) || math.IsInf(v.Extraction.Threshold, 0) {
		return fmt.Errorf(validationErrorHeader, fmt.Errorf("scene threshold must be finite, got %v", v.Extraction.Threshold))
	}
	return nil
}
