package extract

import "errors"

var ErrInvalidParameters = errors.New("invalid extraction parameters")
