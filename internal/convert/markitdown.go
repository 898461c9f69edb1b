// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/markitdown-gateway/internal/container"
)

const defaultImage = "markitdown:latest"

// ContainerConverter converts documents by running the markitdown
// container image with the document bind-mounted into the container.
// Mounting (rather than piping stdin) keeps the file extension visible
// to the engine's format sniffing. It depends on a container.Runtime
// (docker or podman) injected at construction time.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
	timeout time.Duration
}

// NewContainerConverter creates a converter that uses the given
// container runtime to run the markitdown image. It verifies that the
// image exists locally before returning.
func NewContainerConverter(rt container.Runtime, image string, timeout time.Duration) (*ContainerConverter, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image, timeout: timeout}, nil
}

// Convert mounts the file at path into a markitdown container and
// returns the Markdown the container writes to stdout.
func (c *ContainerConverter) Convert(ctx context.Context, path string) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var out bytes.Buffer
	if err := c.runtime.RunFile(ctx, c.image, path, &out); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("markitdown timed out after %v", c.timeout)
		}
		return nil, fmt.Errorf("converting %s with markitdown: %w", path, err)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("markitdown produced empty output for %s", path)
	}

	return &Result{Markdown: out.String()}, nil
}
