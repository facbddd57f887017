// Package scan lists the documents and subdirectories of one documentation
// directory, applying extension filters and exclude globs.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/docnav/internal/naming"
)

// IndexSlug is the slug of a directory's landing document.
const IndexSlug = "index"

// Matcher decides whether a directory or document name is excluded from
// navigation. Patterns are doublestar globs matched against the bare name.
type Matcher struct {
	patterns []string
}

// NewMatcher validates patterns and returns a matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Matcher{patterns: append([]string(nil), patterns...)}, nil
}

// Excluded reports whether name matches any exclude pattern.
func (m *Matcher) Excluded(name string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.patterns {
		// Patterns were validated in NewMatcher, so Match cannot fail.
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Entry is one listed document or directory.
type Entry struct {
	Name string // file or directory name
	Slug string // path segment used in navigation
	Path string // full filesystem path
}

// Listing is the non-recursive content of one directory, each group in
// file-name order.
type Listing struct {
	Documents []Entry
	Dirs      []Entry
}

// Empty reports whether the directory holds nothing navigable.
func (l Listing) Empty() bool {
	return len(l.Documents) == 0 && len(l.Dirs) == 0
}

// Index returns the directory's index document, if any.
func (l Listing) Index() (Entry, bool) {
	for _, d := range l.Documents {
		if d.Slug == IndexSlug {
			return d, true
		}
	}
	return Entry{}, false
}

// Lister lists documentation directories.
type Lister struct {
	extensions []string
	matcher    *Matcher
}

// NewLister returns a lister recognising the given document extensions
// (".md", ".mdx", ...). Extension matching is case-insensitive.
func NewLister(extensions []string, matcher *Matcher) *Lister {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return &Lister{extensions: exts, matcher: matcher}
}

// IsDocument reports whether name carries a recognised document extension.
func (l *Lister) IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range l.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Excluded reports whether a name is excluded from navigation.
func (l *Lister) Excluded(name string) bool {
	return l.matcher.Excluded(name)
}

// List returns the immediate documents and subdirectories of dir.
func (l *Lister) List(dir string) (Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, err
	}

	var listing Listing
	for _, entry := range entries {
		name := entry.Name()
		if l.Excluded(name) {
			continue
		}
		full := filepath.Join(dir, name)

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			info, statErr := os.Stat(full)
			if statErr != nil {
				continue
			}
			isDir = info.IsDir()
		}

		switch {
		case isDir:
			listing.Dirs = append(listing.Dirs, Entry{Name: name, Slug: name, Path: full})
		case l.IsDocument(name):
			listing.Documents = append(listing.Documents, Entry{Name: name, Slug: naming.Slug(name), Path: full})
		}
	}
	return listing, nil
}

// FindDocument locates the document for slug in dir, trying each extension in
// configured order. Extensions match case-insensitively, as in List, so
// "Setup.MD" is found for slug "Setup".
func (l *Lister) FindDocument(dir, slug string) (string, bool) {
	for _, ext := range l.extensions {
		candidate := filepath.Join(dir, slug+ext)
		if isRegular(candidate) {
			return candidate, true
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, ext := range l.extensions {
		for _, entry := range entries {
			name := entry.Name()
			if naming.Slug(name) != slug || strings.ToLower(filepath.Ext(name)) != ext {
				continue
			}
			if candidate := filepath.Join(dir, name); isRegular(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path is an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
