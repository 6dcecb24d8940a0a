package notification

import "errors"

var (
	ErrInvalidFilter = errors.New("invalid notification filter")
	ErrCacheMiss     = errors.New("notification summary not cached")
)
