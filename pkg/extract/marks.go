package extract

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tauraamui/frameextract/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gopkg.in/dealancer/validate.v2"
	"gopkg.in/yaml.v3"
)

type MarksFormat int

const (
	MarksJSON MarksFormat = iota
	MarksYAML
)

// rawMark keeps timestamp as a pointer so a missing key is caught
// instead of silently becoming zero.
type rawMark struct {
	Timestamp   *float64               `json:"timestamp" yaml:"timestamp"`
	Description string                 `json:"description" yaml:"description"`
	TargetSize  *videoframe.Dimensions `json:"target_size" yaml:"target_size"`
}

type targetSize struct {
	W int `validate:"gte=0"`
	H int `validate:"gte=0"`
}

// LoadMarks reads a timestamp mark list from a JSON or YAML file,
// picking the format from the file extension.
func LoadMarks(fs afero.Fs, path string) ([]*TimestampMark, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, xerror.Errorf("%w: unable to read timestamps file %s: %v", ErrInvalidParameters, path, err)
	}

	format := MarksJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = MarksYAML
	}
	return ParseMarks(data, format)
}

func ParseMarks(data []byte, format MarksFormat) ([]*TimestampMark, error) {
	raw := []rawMark{}
	var err error
	switch format {
	case MarksYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, xerror.Errorf("%w: malformed timestamp list: %v", ErrInvalidParameters, err)
	}

	marks := make([]*TimestampMark, 0, len(raw))
	for i, r := range raw {
		if r.Timestamp == nil {
			return nil, xerror.Errorf("%w: timestamp mark %d has no timestamp", ErrInvalidParameters, i)
		}
		marks = append(marks, &TimestampMark{
			Timestamp: *r.Timestamp, Description: r.Description, TargetSize: r.TargetSize,
		})
	}

	if err := validateMarks(marks); err != nil {
		return nil, err
	}
	return marks, nil
}

func validateMarks(marks []*TimestampMark) error {
	if len(marks) == 0 {
		return xerror.Errorf("%w: at least one timestamp mark is required", ErrInvalidParameters)
	}

	for i, mark := range marks {
		if mark == nil {
			return xerror.Errorf("%w: timestamp mark %d is missing", ErrInvalidParameters, i)
		}
		if mark.Timestamp < 0 || math.IsNaN(mark.Timestamp) || math.IsInf(mark.Timestamp, 0) {
			return xerror.Errorf("%w: timestamp mark %d has invalid timestamp %v", ErrInvalidParameters, i, mark.Timestamp)
		}
		if mark.TargetSize != nil {
			if err := validate.Validate(targetSize{W: mark.TargetSize.W, H: mark.TargetSize.H}); err != nil {
				return xerror.Errorf("%w: timestamp mark %d target size: %v", ErrInvalidParameters, i, err)
			}
		}
	}
	return nil
}
