package synth

import (
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/naming"
)

// Default orders for entries whose metadata carries neither position nor
// order. Categories sort ahead of unordered pages.
const (
	DefaultPageOrder     = 999
	DefaultCategoryOrder = 1
	IndexPageOrder       = 0
)

// dirHints are the presentation hints a directory derives from its name and
// optional index document.
type dirHints struct {
	Title       string
	Icon        string
	Order       float64
	Description string
	Collapsed   bool
}

func directoryHints(name string, index *frontmatter.Metadata, icons map[string]string) dirHints {
	h := dirHints{
		Title: naming.Humanize(name),
		Icon:  icons[name],
		Order: DefaultCategoryOrder,
	}
	if index == nil {
		return h
	}
	h.Title = index.TitleOr(h.Title)
	if index.Icon != "" {
		h.Icon = index.Icon
	}
	h.Order = index.ResolveOrder(DefaultCategoryOrder)
	h.Description = index.Description
	h.Collapsed = index.Collapsed
	return h
}

// pageTitle resolves a page title from metadata, falling back to the
// humanized slug.
func pageTitle(slug string, meta frontmatter.Metadata) string {
	return meta.TitleOr(naming.Humanize(slug))
}
