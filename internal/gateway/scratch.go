// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// stage writes content to a uniquely-named file in the scratch directory,
// keeping the upload's extension so the engine can sniff the format from
// the suffix. The UUID name guarantees no collision between concurrent
// requests, so the scratch directory needs no locking.
func (g *Gateway) stage(filename string, content []byte) (string, error) {
	dir := g.scratchDir
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(filename))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("writing scratch file %s: %w", path, err)
	}
	return path, nil
}

// discard removes the scratch file. Removal is best effort: a failure is
// logged but never escalated to the caller.
func (g *Gateway) discard(path, filename string) {
	if err := os.Remove(path); err != nil {
		g.logger.WithField("filename", filename).WithError(err).Warn("removing scratch file")
	}
}
