package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "navigation.json")

	require.NoError(t, WriteFileAtomic(path, []byte("{}\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{}\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_meta.json")

	changed, err := WriteIfChanged(path, []byte("a"))
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = WriteIfChanged(path, []byte("a"))
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = WriteIfChanged(path, []byte("b"))
	require.NoError(t, err)
	require.True(t, changed)
}
