package common

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/card-recon/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFlag(t *testing.T) {
	assert.NoError(t, RequireFlag("input", "a.pdf"))

	err := RequireFlag("input", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")
}

func TestContainer_NotInitialized(t *testing.T) {
	root.AppContainer = nil
	_, err := Container()
	assert.Error(t, err)
}

func TestOpenOutput(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		var buf bytes.Buffer
		w, closeFn, err := OpenOutput("", &buf)
		require.NoError(t, err)
		assert.Same(t, &buf, w)
		assert.NoError(t, closeFn())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "out.csv")
		w, closeFn, err := OpenOutput(path, nil)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})
}
