// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantExt  string
	}{
		{name: "docx extension preserved", filename: "report.docx", wantExt: ".docx"},
		{name: "final suffix of multi-dot name", filename: "archive.tar.gz", wantExt: ".gz"},
		{name: "no extension", filename: "README", wantExt: ""},
		{name: "uppercase extension kept as-is", filename: "SLIDES.PPTX", wantExt: ".PPTX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, scratch := newTestGateway(t, &fakeConverter{}, 0)

			path, err := g.stage(tt.filename, []byte("payload"))
			require.NoError(t, err)

			assert.Equal(t, scratch, filepath.Dir(path))
			assert.Equal(t, tt.wantExt, filepath.Ext(path))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "payload", string(data))

			g.discard(path, tt.filename)
			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err), "scratch file should be removed")
		})
	}
}

func TestStage_UniqueNames(t *testing.T) {
	g, _ := newTestGateway(t, &fakeConverter{}, 0)

	seen := make(map[string]bool)
	for range 20 {
		path, err := g.stage("same.pdf", []byte("same"))
		require.NoError(t, err)
		assert.False(t, seen[path], "scratch names must not collide")
		seen[path] = true
	}
}

func TestStage_MissingDirectory(t *testing.T) {
	g, scratch := newTestGateway(t, &fakeConverter{}, 0)
	g.scratchDir = filepath.Join(scratch, "does-not-exist")

	_, err := g.stage("report.docx", []byte("payload"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "writing scratch file"))
}

func TestDiscard_MissingFileLogsOnly(t *testing.T) {
	g, scratch := newTestGateway(t, &fakeConverter{}, 0)

	// Removing a path that is already gone must not panic or escalate.
	g.discard(filepath.Join(scratch, "already-gone.pdf"), "already-gone.pdf")
}
