// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const defaultBinary = "markitdown"

// CLIConverter converts documents by executing the markitdown binary
// with the document path as its argument. The engine sniffs the format
// from the file extension, so callers must pass paths that preserve the
// original suffix.
type CLIConverter struct {
	binary  string
	timeout time.Duration
}

// NewCLIConverter creates a converter that runs the given markitdown
// executable. A zero timeout leaves engine invocations unbounded.
func NewCLIConverter(binary string, timeout time.Duration) *CLIConverter {
	return &CLIConverter{binary: binary, timeout: timeout}
}

// Convert runs the engine against the file at path and returns the
// Markdown it prints to stdout. Engine failures carry the tail of the
// engine's stderr so callers can report what went wrong with the input.
func (c *CLIConverter) Convert(ctx context.Context, path string) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("markitdown timed out after %v", c.timeout)
		}
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("markitdown failed: %s", msg)
		}
		return nil, fmt.Errorf("markitdown failed: %w", err)
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("markitdown produced empty output for %s", path)
	}

	return &Result{Markdown: stdout.String()}, nil
}

// lastLine returns the final non-blank line of s, which for markitdown
// is where the actual parse error lands.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
