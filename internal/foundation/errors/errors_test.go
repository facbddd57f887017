package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docnav.yaml").
			Build()

		require.Equal(t, CategoryConfig, err.Category())
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		require.Equal(t, "docnav.yaml", file)
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("run build: %w", DocsError("documentation root not found").Build())

		require.True(t, IsClassified(err))
		require.True(t, HasCategory(err, CategoryDocs))
		require.Equal(t, SeverityFatal, GetSeverity(err))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := errors.New("plain")

		require.False(t, IsClassified(err))
		require.Equal(t, CategoryInternal, GetCategory(err))
		require.Equal(t, SeverityError, GetSeverity(err))
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := WrapError(originalErr, CategoryFileSystem, "write manifest").
		Warning().
		WithContext("dir", "guides").
		Build()

	require.Equal(t, SeverityWarning, err.Severity())
	require.ErrorIs(t, err, originalErr)
	require.Contains(t, err.Error(), "[filesystem:warning] write manifest: permission denied")

	withMore := err.WithContext("slug", "setup")
	_, hadSlug := err.Context().Get("slug")
	require.False(t, hadSlug, "WithContext must not mutate the receiver")
	slug, _ := withMore.Context().GetString("slug")
	require.Equal(t, "setup", slug)
}

func TestSentinelMatching(t *testing.T) {
	sentinel := DocsError("documentation root not found").Build()
	err := DocsError("documentation root not found").WithContext("root", "/tmp/x").Build()

	require.ErrorIs(t, fmt.Errorf("wrapped: %w", err), sentinel)
	require.NotErrorIs(t, err, ManifestError("documentation root not found").Build())
}
