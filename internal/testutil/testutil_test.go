package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteTree(t *testing.T) {
	root := WriteTree(t, map[string]string{
		"guides/setup.md":   "---\ntitle: Setup\n---\n",
		"guides/deep/x.mdx": "",
	})

	data, err := os.ReadFile(filepath.Join(root, "guides", "setup.md"))
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: Setup\n---\n", string(data))

	NewFileAssertions(t, root).
		AssertFileExists("guides/deep/x.mdx").
		AssertFileNotExists("guides/_meta.json")
}
