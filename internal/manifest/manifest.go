// Package manifest defines the per-directory navigation manifest written by
// the synthesizer and read back by the tree builder.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"git.home.luguber.info/inful/docnav/internal/fsutil"
)

// DefaultFileName is the manifest file written into each directory.
const DefaultFileName = "_meta.json"

// EntryType distinguishes leaf pages from nested categories.
type EntryType string

const (
	TypePage     EntryType = "page"
	TypeCategory EntryType = "category"
)

// Entry is one line item in a directory manifest.
type Entry struct {
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	Order float64   `json:"order"`
	Type  EntryType `json:"type"`
	Icon  string    `json:"icon,omitempty"`
}

// Manifest summarises one directory: its own presentation hints and its
// ordered items.
type Manifest struct {
	Title       string  `json:"title"`
	Order       float64 `json:"order"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Collapsed   bool    `json:"collapsed"`
	Items       []Entry `json:"items"`
}

var (
	// ErrInvalidEntryType indicates an item whose type is neither page nor category.
	ErrInvalidEntryType = errors.New("invalid manifest entry type")
	// ErrEmptySlug indicates an item without a slug.
	ErrEmptySlug = errors.New("manifest entry has empty slug")
	// ErrDuplicateSlug indicates two items sharing a slug.
	ErrDuplicateSlug = errors.New("duplicate manifest entry slug")
)

// SortItems orders items ascending by Order. Ties keep their existing order.
func (m *Manifest) SortItems() {
	sort.SliceStable(m.Items, func(i, j int) bool {
		return m.Items[i].Order < m.Items[j].Order
	})
}

// Validate checks entry types and slug uniqueness.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Items))
	for _, item := range m.Items {
		if item.Type != TypePage && item.Type != TypeCategory {
			return fmt.Errorf("%w: %q (slug %q)", ErrInvalidEntryType, item.Type, item.Slug)
		}
		if item.Slug == "" {
			return ErrEmptySlug
		}
		if _, dup := seen[item.Slug]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSlug, item.Slug)
		}
		seen[item.Slug] = struct{}{}
	}
	return nil
}

// ToJSON serializes the manifest as indented JSON with a trailing newline.
func (m *Manifest) ToJSON() ([]byte, error) {
	out := *m
	if out.Items == nil {
		out.Items = []Entry{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON deserializes and validates a manifest.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Read loads the manifest at path. A missing file is reported with an error
// satisfying errors.Is(err, fs.ErrNotExist).
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// Write persists m at path, leaving an identical existing file untouched.
// It reports whether the file changed.
func Write(path string, m *Manifest) (bool, error) {
	data, err := m.ToJSON()
	if err != nil {
		return false, err
	}
	return fsutil.WriteIfChanged(path, data)
}
