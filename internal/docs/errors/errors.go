// Package errors provides sentinel errors for documentation tree operations.
// These enable consistent classification of build failures and warnings.
package errors

import "errors"

var (
	// ErrRootNotFound indicates the configured documentation root does not exist.
	ErrRootNotFound = errors.New("documentation root not found")

	// ErrManifestWrite indicates a directory manifest could not be persisted.
	ErrManifestWrite = errors.New("manifest write failed")

	// ErrArtifactWrite indicates a generated artifact could not be written.
	ErrArtifactWrite = errors.New("artifact write failed")
)
