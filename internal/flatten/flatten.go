// Package flatten derives the flat page index and aggregate statistics from
// a navigation tree.
package flatten

import (
	"strings"

	"git.home.luguber.info/inful/docnav/internal/navtree"
)

// Entry is one navigable page in the flat index.
type Entry struct {
	Title    string `json:"title"`
	Path     string `json:"path"`
	Slug     string `json:"slug"`     // dotted ancestry, e.g. guides.advanced.setup
	Category string `json:"category"` // slash-joined parent path, e.g. guides/advanced
}

// Stats are display-only aggregates over a navigation tree.
type Stats struct {
	Categories      int            `json:"categories"` // top-level nodes
	Pages           int            `json:"pages"`
	PagesByCategory map[string]int `json:"pagesByCategory"`
	MaxDepth        int            `json:"maxDepth"` // a top-level node has depth 1
}

// Flatten walks the tree depth-first in child order and returns one entry per
// page. Index pages are not included.
func Flatten(s *navtree.Structure) []Entry {
	entries := []Entry{}
	if s == nil {
		return entries
	}
	var walk func(n *navtree.Node, ancestry []string)
	walk = func(n *navtree.Node, ancestry []string) {
		for _, child := range n.Children {
			switch c := child.(type) {
			case *navtree.Node:
				walk(c, extend(ancestry, lastSegment(c.Slug)))
			case *navtree.Page:
				entries = append(entries, Entry{
					Title:    c.Title,
					Path:     c.Path,
					Slug:     strings.Join(extend(ancestry, c.Slug), "."),
					Category: strings.Join(ancestry, "/"),
				})
			}
		}
	}
	for _, n := range s.Navigation {
		walk(n, []string{lastSegment(n.Slug)})
	}
	return entries
}

// Compute returns the statistics of s.
func Compute(s *navtree.Structure) Stats {
	stats := Stats{PagesByCategory: map[string]int{}}
	if s == nil {
		return stats
	}
	stats.Categories = len(s.Navigation)

	var walk func(n *navtree.Node, depth int)
	walk = func(n *navtree.Node, depth int) {
		stats.MaxDepth = max(stats.MaxDepth, depth)
		for _, child := range n.Children {
			switch c := child.(type) {
			case *navtree.Node:
				walk(c, depth+1)
			case *navtree.Page:
				stats.Pages++
				stats.PagesByCategory[n.Slug]++
			}
		}
	}
	for _, n := range s.Navigation {
		walk(n, 1)
	}
	return stats
}

func extend(ancestry []string, segment string) []string {
	out := make([]string, len(ancestry), len(ancestry)+1)
	copy(out, ancestry)
	return append(out, segment)
}

func lastSegment(slug string) string {
	if i := strings.LastIndex(slug, "/"); i >= 0 {
		return slug[i+1:]
	}
	return slug
}
