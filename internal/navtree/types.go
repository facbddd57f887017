// Package navtree assembles the persisted directory manifests into a single
// navigation tree.
package navtree

import "time"

// Version is the schema version stamped on every generated structure.
const Version = "1.0"

// Structure is the navigation artifact consumed by the rendering layer.
type Structure struct {
	Navigation    []*Node   `json:"navigation"`
	LastGenerated time.Time `json:"lastGenerated"`
	Version       string    `json:"version"`
}

// Item is a child of a Node: either a nested *Node or a terminal *Page.
type Item interface {
	ItemOrder() float64
}

// Node is a category in the navigation tree. Slug is the slash-joined
// ancestry of the directory below the documentation root.
type Node struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
	Order       float64    `json:"order"`
	Collapsed   bool       `json:"collapsed"`
	Children    []Item     `json:"children"`
	IndexPage   *IndexPage `json:"indexPage,omitempty"`
}

// Page is a leaf document. Path is the site URL of the page.
type Page struct {
	Title string  `json:"title"`
	Slug  string  `json:"slug"`
	Path  string  `json:"path"`
	Order float64 `json:"order"`
	Icon  string  `json:"icon,omitempty"`
}

// IndexPage is a category's landing document.
type IndexPage struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

func (n *Node) ItemOrder() float64 { return n.Order }
func (p *Page) ItemOrder() float64 { return p.Order }
