package config

import "time"

// Transport modes supported by the bridge. Exactly one is active per server
// instance, selected at startup.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config holds all configuration for the range bridge server
type Config struct {
	APIBaseURL string `json:"apiBaseUrl"`
	Transport  string `json:"transport"`
	Port       int    `json:"port"`
	Debug      bool   `json:"debug"`
	LogLevel   string `json:"logLevel"`

	// CredentialsPath is where the credential store lives on disk.
	// Empty means the default location under the user's home directory.
	CredentialsPath string `json:"credentialsPath,omitempty"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}

	switch c.Transport {
	case TransportStdio, TransportSSE:
	default:
		return ErrInvalidTransport
	}

	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL: "https://localhost:8443",
		Transport:  TransportStdio,
		Port:       8080,
		Debug:      false,
		LogLevel:   "info",
	}
}

// RequestTimeout is how long a single backend API call may take
func RequestTimeout() time.Duration {
	return 30 * time.Second
}

// ShutdownGrace is how long the SSE transport waits for in-flight calls
// after a cancellation signal before closing the listener
func ShutdownGrace() time.Duration {
	return 10 * time.Second
}
