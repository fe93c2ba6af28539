// FILE: lixenwraith/confchain/internal/fileutil/atomic_test.go
package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.toml")

	require.NoError(t, WriteAtomic(path, []byte("a = 1\n"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", string(data))

	t.Run("Replaces Existing", func(t *testing.T) {
		require.NoError(t, WriteAtomic(path, []byte("a = 2\n"), 0600))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a = 2\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("No Temp Files Left", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
