package frontmatter

import (
	"errors"
	"fmt"
	"os"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docnav/internal/diagnostics"
)

// Document is one documentation file as seen by the build: its location, its
// metadata and a fingerprint of its content.
type Document struct {
	Path        string
	RelPath     string
	Metadata    Metadata
	HasHeader   bool
	Fingerprint string
}

// Extract reads the document at path and parses its frontmatter. It never
// fails: an unreadable file or malformed header yields empty metadata and a
// warning on collector naming relPath.
func Extract(path, relPath string, collector *diagnostics.Collector) Document {
	doc := Document{Path: path, RelPath: relPath}

	content, err := os.ReadFile(path)
	if err != nil {
		collector.Add(diagnostics.Issue{
			Code:    diagnostics.CodeFrontmatterUnreadable,
			Path:    relPath,
			Message: fmt.Sprintf("Document could not be read, using empty metadata: %v", err),
		})
		return doc
	}

	raw, body, had, err := Split(content)
	if err != nil {
		collector.Add(diagnostics.Issue{
			Code:    diagnostics.CodeFrontmatterMalformed,
			Path:    relPath,
			Message: fmt.Sprintf("Frontmatter header is malformed, using empty metadata: %v", err),
		})
		doc.Fingerprint = mdfp.CalculateFingerprintFromParts("", string(content))
		return doc
	}
	doc.HasHeader = had
	doc.Fingerprint = mdfp.CalculateFingerprintFromParts(string(raw), string(body))

	meta, err := ParseMetadata(raw)
	if err != nil {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			collector.Add(diagnostics.Issue{
				Code:    diagnostics.CodeFrontmatterFieldType,
				Path:    relPath,
				Message: fmt.Sprintf("Frontmatter field has an unexpected type and was ignored: %v", err),
			})
		} else {
			collector.Add(diagnostics.Issue{
				Code:    diagnostics.CodeFrontmatterMalformed,
				Path:    relPath,
				Message: fmt.Sprintf("Frontmatter header is malformed, using empty metadata: %v", err),
			})
		}
	}
	doc.Metadata = meta
	return doc
}
