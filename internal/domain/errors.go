package domain

import "errors"

// Domain errors
var (
	ErrContainerNotFound   = errors.New("container not found")
	ErrStreamerUnavailable = errors.New("log streamer not available")
	ErrConfigNotFound      = errors.New("config file not found")
	ErrInvalidConfig       = errors.New("invalid configuration")
)
