// Package testutil holds helpers for building documentation fixture trees in
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates files (slash-separated relative path → content) under a
// fresh temporary directory and returns the directory.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, files)
	return root
}

// WriteFiles creates files under root, making parent directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// AssertFileExists validates that a file exists.
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if _, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist.
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}
