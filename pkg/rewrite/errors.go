package rewrite

import "errors"

var (
	ErrInvalidSource      = errors.New("invalid rewrite source")
	ErrInvalidDestination = errors.New("invalid rewrite destination")
	ErrInvalidPattern     = errors.New("invalid parameter pattern")
	ErrUnknownParam       = errors.New("destination references a parameter not captured by the source")
	ErrDuplicateParam     = errors.New("duplicate parameter name in source")
)
