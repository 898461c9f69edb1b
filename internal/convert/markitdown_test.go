// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// fakeRuntime implements container.Runtime for testing.
type fakeRuntime struct {
	imageErr error
	runErr   error
	output   string
	gotPath  string
}

func (f *fakeRuntime) Name() string    { return "docker" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(string) error { return f.imageErr }

func (f *fakeRuntime) RunFile(_ context.Context, _ string, hostPath string, stdout io.Writer) error {
	f.gotPath = hostPath
	if f.runErr != nil {
		return f.runErr
	}
	_, _ = stdout.Write([]byte(f.output))
	return nil
}

func TestNewContainerConverter_ImageMissing(t *testing.T) {
	rt := &fakeRuntime{imageErr: errors.New("no such image")}
	_, err := NewContainerConverter(rt, "markitdown:latest", 0)
	if err == nil {
		t.Fatal("expected error when image is missing")
	}
	if !strings.Contains(err.Error(), "markitdown image not available in docker") {
		t.Errorf("error should mention the runtime, got: %v", err)
	}
}

func TestContainerConverter_Convert(t *testing.T) {
	tests := []struct {
		name    string
		rt      *fakeRuntime
		want    string
		errPart string
	}{
		{
			name: "container stdout returned verbatim",
			rt:   &fakeRuntime{output: "# Report\n\nHello"},
			want: "# Report\n\nHello",
		},
		{
			name:    "run failure is wrapped",
			rt:      &fakeRuntime{runErr: errors.New("container exited with code 1")},
			errPart: "container exited with code 1",
		},
		{
			name:    "empty output is an engine failure",
			rt:      &fakeRuntime{output: ""},
			errPart: "empty output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainerConverter(tt.rt, "markitdown:latest", 0)
			if err != nil {
				t.Fatalf("unexpected constructor error: %v", err)
			}

			doc, _ := setupDoc(t, "slides.pptx")
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
			if tt.rt.gotPath != doc {
				t.Errorf("runtime got path %q, want %q", tt.rt.gotPath, doc)
			}
		})
	}
}
