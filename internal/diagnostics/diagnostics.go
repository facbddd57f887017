// Package diagnostics collects the non-fatal issues raised while compiling a
// documentation tree.
//
// A Collector is created at build start, handed to every phase, and flushed
// to the build log once at build end. It is safe for concurrent use.
package diagnostics

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Code enumerates machine-parseable issue identifiers. Codes are a stable
// contract for report consumers: append only.
type Code string

const (
	CodeFrontmatterUnreadable Code = "frontmatter_unreadable"
	CodeFrontmatterMalformed  Code = "frontmatter_malformed"
	CodeFrontmatterFieldType  Code = "frontmatter_field_type"
	CodeDirectoryUnreadable   Code = "directory_unreadable"
	CodeDuplicateSlug         Code = "duplicate_slug"
	CodeManifestWriteFailed   Code = "manifest_write_failed"
	CodeManifestMissing       Code = "manifest_missing"
	CodeManifestInvalid       Code = "manifest_invalid"
	CodeDanglingCategory      Code = "dangling_category"
	CodeDanglingPage          Code = "dangling_page"
	CodeCategoryCycle         Code = "category_cycle"
)

// Severity of a collected issue. Fatal conditions are returned as errors and
// never reach the collector.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one recorded anomaly.
type Issue struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Dir      string   `json:"dir,omitempty"`
	Path     string   `json:"path,omitempty"`
	Slug     string   `json:"slug,omitempty"`
	Message  string   `json:"message"`
}

// Collector accumulates issues for a single build.
type Collector struct {
	mu      sync.Mutex
	issues  []Issue
	flushed bool
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records an issue. A missing severity defaults to warning. Add on a nil
// collector is a no-op so leaf helpers can be called without one.
func (c *Collector) Add(issue Issue) {
	if c == nil {
		return
	}
	if issue.Severity == "" {
		issue.Severity = SeverityWarning
	}
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.mu.Unlock()
}

// Issues returns a sorted copy of the recorded issues. Sorting keeps reports
// stable when phases append concurrently.
func (c *Collector) Issues() []Issue {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	out := make([]Issue, len(c.issues))
	copy(out, c.issues)
	c.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Dir != b.Dir {
			return a.Dir < b.Dir
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Slug != b.Slug {
			return a.Slug < b.Slug
		}
		return a.Code < b.Code
	})
	return out
}

// Len reports the number of recorded issues.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

// CountByCode groups issue counts by code.
func (c *Collector) CountByCode() map[Code]int {
	counts := make(map[Code]int)
	for _, issue := range c.Issues() {
		counts[issue.Code]++
	}
	return counts
}

// Has reports whether any issue with the given code was recorded.
func (c *Collector) Has(code Code) bool {
	return c.CountByCode()[code] > 0
}

// Flush writes every issue to logger exactly once. Later calls are no-ops.
func (c *Collector) Flush(ctx context.Context, logger *slog.Logger) {
	if c == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	c.mu.Lock()
	if c.flushed {
		c.mu.Unlock()
		return
	}
	c.flushed = true
	c.mu.Unlock()

	for _, issue := range c.Issues() {
		level := slog.LevelWarn
		if issue.Severity == SeverityInfo {
			level = slog.LevelInfo
		}
		attrs := []slog.Attr{logfields.IssueCode(string(issue.Code))}
		if issue.Dir != "" {
			attrs = append(attrs, logfields.Dir(issue.Dir))
		}
		if issue.Path != "" {
			attrs = append(attrs, logfields.Path(issue.Path))
		}
		if issue.Slug != "" {
			attrs = append(attrs, logfields.Slug(issue.Slug))
		}
		logger.LogAttrs(ctx, level, issue.Message, attrs...)
	}
}
