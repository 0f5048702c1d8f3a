package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrConfigNotLoaded is returned when attempting to access a config that hasn't been loaded
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be read
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrReadingDocument is returned when the routing document cannot be read from disk
	ErrReadingDocument = errors.New("failed to read routing document")

	// ErrDecodingDocument is returned when the routing document is malformed
	ErrDecodingDocument = errors.New("failed to decode routing document")

	// ErrUnsupportedFormat is returned for routing documents with an unknown extension
	ErrUnsupportedFormat = errors.New("unsupported routing document format")
)
