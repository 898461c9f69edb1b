// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and wire payload types shared
// between the CLI and the gateway.
package types

import "time"

// ServerConfig holds settings for the HTTP listener.
type ServerConfig struct {
	// Listen is the address the server binds to (e.g. "0.0.0.0:8003").
	Listen string `json:"listen" yaml:"listen"`

	// ScratchDir is the directory used to stage uploads for the engine.
	// Empty means the operating system temp directory.
	ScratchDir string `json:"scratch_dir" yaml:"scratch_dir"`

	// MaxUploadBytes caps the request body size. Zero means no limit,
	// matching the historical behaviour of the service.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`

	// ShutdownTimeout bounds how long in-flight conversions may run
	// after a termination signal (default 30s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ConversionBackend identifies how the markitdown engine is invoked.
type ConversionBackend string

const (
	// BackendCLI execs a markitdown binary found on PATH.
	BackendCLI ConversionBackend = "cli"

	// BackendContainer runs the markitdown container image through
	// docker or podman.
	BackendContainer ConversionBackend = "container"
)

// ConversionConfig holds settings for the conversion engine.
type ConversionConfig struct {
	// Backend selects the engine invocation: cli or container.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// BinaryPath is the markitdown executable used by the cli backend
	// (default "markitdown").
	BinaryPath string `json:"binary_path" yaml:"binary_path"`

	// Image is the container image used by the container backend
	// (default "markitdown:latest").
	Image string `json:"image" yaml:"image"`

	// Timeout bounds a single engine invocation (default 5m).
	// Zero disables the bound.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// AuthConfig holds the bearer-token credential the gateway checks on
// /convert requests.
type AuthConfig struct {
	// Token is the expected bearer token. Compared by exact string
	// equality; read-only after startup.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// GatewayConfig groups all configuration for the gateway process.
type GatewayConfig struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Auth       AuthConfig       `json:"auth" yaml:"auth"`
}
