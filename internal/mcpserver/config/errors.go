package config

import "errors"

var (
	// ErrMissingAPIBaseURL indicates that the API base URL is not configured
	ErrMissingAPIBaseURL = errors.New("apiBaseUrl is required in configuration")

	// ErrInvalidTransport indicates an unsupported transport mode
	ErrInvalidTransport = errors.New("transport must be \"stdio\" or \"sse\"")

	// ErrInvalidPort indicates a port outside the valid TCP range
	ErrInvalidPort = errors.New("port must be between 1 and 65535")

	// ErrConfigFileNotFound indicates that the config file was not found
	ErrConfigFileNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFormat indicates that the config file has invalid JSON
	ErrInvalidConfigFormat = errors.New("invalid configuration file format")
)
