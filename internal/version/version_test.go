package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.NotEmpty(t, Version)
	require.Contains(t, String(), Version)
	require.Contains(t, String(), "commit "+GitCommit)
}
