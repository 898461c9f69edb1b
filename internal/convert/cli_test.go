// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/markitdown-gateway/pkg/types"
)

func testConversionConfig(backend string) types.ConversionConfig {
	return types.ConversionConfig{
		Backend:    types.ConversionBackend(backend),
		BinaryPath: "markitdown",
	}
}

// writeScript installs an executable shell script standing in for the
// markitdown binary and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "markitdown")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCLIConverter_Convert(t *testing.T) {
	doc, _ := setupDoc(t, "report.docx")

	tests := []struct {
		name    string
		script  string
		want    string
		errPart string
	}{
		{
			name:   "engine output returned verbatim",
			script: `printf '# Report\n\nHello'`,
			want:   "# Report\n\nHello",
		},
		{
			name:    "engine failure carries stderr detail",
			script:  `echo "UnsupportedFormatException: .xyz" >&2; exit 1`,
			errPart: "UnsupportedFormatException: .xyz",
		},
		{
			name:    "empty output is an engine failure",
			script:  `exit 0`,
			errPart: "empty output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := writeScript(t, tt.script)
			c := NewCLIConverter(bin, 0)

			res, err := c.Convert(context.Background(), doc)
			if tt.errPart != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errPart) {
					t.Errorf("error %q does not contain %q", err, tt.errPart)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Markdown != tt.want {
				t.Errorf("markdown = %q, want %q", res.Markdown, tt.want)
			}
			if res.Title != "" {
				t.Errorf("cli backend should not report a title, got %q", res.Title)
			}
		})
	}
}

func TestCLIConverter_MissingBinary(t *testing.T) {
	doc, _ := setupDoc(t, "report.docx")
	c := NewCLIConverter(filepath.Join(t.TempDir(), "no-such-binary"), 0)

	if _, err := c.Convert(context.Background(), doc); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestCLIConverter_Timeout(t *testing.T) {
	doc, _ := setupDoc(t, "report.docx")
	bin := writeScript(t, "sleep 5")
	c := NewCLIConverter(bin, 50*time.Millisecond)

	_, err := c.Convert(context.Background(), doc)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error %q should mention the timeout", err)
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "only line", want: "only line"},
		{in: "traceback\n  frame\nValueError: bad input\n", want: "ValueError: bad input"},
		{in: "message\n\n\n", want: "message"},
	}
	for _, tt := range tests {
		if got := lastLine(tt.in); got != tt.want {
			t.Errorf("lastLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
