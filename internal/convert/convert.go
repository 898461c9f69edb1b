// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert invokes the markitdown engine to turn documents into
// Markdown. The engine is opaque: it takes a filesystem path and either
// produces Markdown text (with an optional title) or fails with a
// message describing the input. Two backends exist, one executing a
// markitdown binary and one running the markitdown container image.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/markitdown-gateway/internal/container"
	"github.com/pdiddy/markitdown-gateway/pkg/types"
)

// Result is the engine's output for one document.
type Result struct {
	// Markdown is the extracted text content.
	Markdown string

	// Title is the document title when the engine reports one;
	// empty otherwise.
	Title string
}

// Converter transforms a document file into Markdown. Implementations
// return an error when the engine cannot parse the input; the error
// message describes the uploaded content and is safe to surface to the
// caller.
type Converter interface {
	// Convert reads the document at path and returns the Markdown content.
	Convert(ctx context.Context, path string) (*Result, error)
}

// NewConverter builds the Converter selected by cfg.Backend. The
// container backend detects a docker or podman runtime and verifies the
// image exists before returning.
func NewConverter(cfg types.ConversionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendCLI, "":
		bin := cfg.BinaryPath
		if bin == "" {
			bin = defaultBinary
		}
		return NewCLIConverter(bin, cfg.Timeout), nil
	case types.BackendContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		image := cfg.Image
		if image == "" {
			image = defaultImage
		}
		return NewContainerConverter(rt, image, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
	}
}

// ConversionStatus reports the outcome of one batch conversion.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "done"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// frontmatter is prepended to Markdown written by batch conversion.
type frontmatter struct {
	SourceFile  string `yaml:"source_file"`
	ConvertedAt string `yaml:"converted_at"`
	Title       string `yaml:"title,omitempty"`
}

// ConvertFile converts a single document to Markdown, writing the result
// into outDir as <name>.md. If the output already exists the file is
// skipped. Per-file status is printed to w.
func ConvertFile(ctx context.Context, c Converter, path, outDir string, w io.Writer) ConversionStatus {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mdPath := filepath.Join(outDir, base+".md")

	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return ConversionSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return ConversionFailed
	}

	res, err := c.Convert(ctx, path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return ConversionFailed
	}

	content, err := addFrontmatter(path, res)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return ConversionFailed
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return ConversionDone
}

// ConvertPaths processes a list of document paths through the converter,
// printing per-file status to w and returning a summary.
func ConvertPaths(ctx context.Context, c Converter, paths []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(ctx, c, p, outDir, w) {
		case ConversionDone:
			result.Converted++
		case ConversionSkipped:
			result.Skipped++
		case ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown.
func addFrontmatter(path string, res *Result) (string, error) {
	fm := frontmatter{
		SourceFile:  filepath.Base(path),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		Title:       res.Title,
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(res.Markdown)
	return b.String(), nil
}
