package manifest

import "errors"

var (
	// ErrInvalidConfig wraps every configuration problem found while building.
	ErrInvalidConfig = errors.New("invalid routing configuration")

	ErrInvalidBasePath       = errors.New("base path must start with / and must not end with /")
	ErrUnsupportedVersion    = errors.New("unsupported manifest version")
	ErrFailedToParseManifest = errors.New("failed to parse routing manifest")
	ErrFailedToEncode        = errors.New("failed to encode routing manifest")
	ErrNoSnapshot            = errors.New("no manifest snapshot loaded")
)
