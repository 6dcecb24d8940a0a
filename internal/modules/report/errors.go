package report

import "errors"

var ErrInvalidDate = errors.New("dates must be formatted as YYYY-MM-DD")
