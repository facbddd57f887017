package navtree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/scan"
)

// Options configures a Builder.
type Options struct {
	Root         string
	Lister       *scan.Lister
	ManifestName string
	URLPrefix    string // normalized: leading slash, no trailing slash, or empty
	Collector    *diagnostics.Collector
	Logger       *slog.Logger
	Now          func() time.Time
}

// nodeState tracks a directory through tree assembly.
type nodeState int

const (
	statePending nodeState = iota
	stateResolving
	stateResolved
)

// Builder reads manifests top-down and resolves them into a Structure.
type Builder struct {
	opts  Options
	state map[string]nodeState
}

// New returns a Builder. A nil Now uses time.Now.
func New(opts Options) *Builder {
	if opts.Lister == nil {
		opts.Lister = scan.NewLister([]string{".md", ".mdx"}, nil)
	}
	if opts.ManifestName == "" {
		opts.ManifestName = manifest.DefaultFileName
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{opts: opts}
}

// Build assembles the navigation tree. Only an unreadable root or a canceled
// context is an error; every dangling reference is recorded and skipped.
func (b *Builder) Build(ctx context.Context) (*Structure, error) {
	b.state = make(map[string]nodeState)

	listing, err := b.opts.Lister.List(b.opts.Root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDocs, "documentation root cannot be listed").
			WithContext("root", b.opts.Root).
			Fatal().
			Build()
	}

	nav := make([]*Node, 0, len(listing.Dirs))
	for _, dir := range listing.Dirs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("tree assembly canceled: %w", err)
		}
		if node := b.resolve(dir.Path, []string{dir.Slug}); node != nil {
			nav = append(nav, node)
		}
	}
	sort.SliceStable(nav, func(i, j int) bool { return nav[i].Order < nav[j].Order })

	return &Structure{
		Navigation:    nav,
		LastGenerated: b.opts.Now().UTC(),
		Version:       Version,
	}, nil
}

// resolve turns the manifest of dir into a Node. It returns nil when the
// subtree must be pruned.
func (b *Builder) resolve(dir string, segments []string) *Node {
	rel := strings.Join(segments, "/")
	key := stateKey(dir)

	switch b.state[key] {
	case stateResolving:
		b.warn(diagnostics.CodeCategoryCycle, rel, "", "Category refers back to one of its ancestors and is skipped")
		return nil
	case stateResolved:
		b.warn(diagnostics.CodeCategoryCycle, rel, "", "Category directory is already part of the tree and is skipped")
		return nil
	}
	b.state[key] = stateResolving
	defer func() { b.state[key] = stateResolved }()

	m, err := manifest.Read(filepath.Join(dir, b.opts.ManifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.warn(diagnostics.CodeManifestMissing, rel, "", "Directory has no manifest; subtree pruned")
		} else {
			b.warn(diagnostics.CodeManifestInvalid, rel, "", fmt.Sprintf("Manifest unreadable, subtree pruned: %v", err))
		}
		return nil
	}

	node := &Node{
		Title:       m.Title,
		Slug:        rel,
		Icon:        m.Icon,
		Description: m.Description,
		Order:       m.Order,
		Collapsed:   m.Collapsed,
		Children:    make([]Item, 0, len(m.Items)),
	}

	for _, item := range m.Items {
		if !validSegment(item.Slug) || b.opts.Lister.Excluded(item.Slug) {
			code := diagnostics.CodeDanglingPage
			if item.Type == manifest.TypeCategory {
				code = diagnostics.CodeDanglingCategory
			}
			b.warn(code, rel, item.Slug, "Manifest entry does not name an entry of this directory and is skipped")
			continue
		}

		switch {
		case item.Type == manifest.TypeCategory:
			subdir := filepath.Join(dir, item.Slug)
			if !scan.DirExists(subdir) {
				b.warn(diagnostics.CodeDanglingCategory, rel, item.Slug, "Category directory does not exist and is skipped")
				continue
			}
			child := b.resolve(subdir, append(segments[:len(segments):len(segments)], item.Slug))
			if child == nil {
				continue
			}
			child.Order = item.Order
			node.Children = append(node.Children, child)

		case item.Slug == scan.IndexSlug:
			if _, ok := b.opts.Lister.FindDocument(dir, scan.IndexSlug); !ok {
				b.warn(diagnostics.CodeDanglingPage, rel, item.Slug, "Index document does not exist and is skipped")
				continue
			}
			node.IndexPage = &IndexPage{
				Title: item.Title,
				Slug:  scan.IndexSlug,
				Path:  b.url(segments...),
				Icon:  item.Icon,
			}

		default:
			if _, ok := b.opts.Lister.FindDocument(dir, item.Slug); !ok {
				b.warn(diagnostics.CodeDanglingPage, rel, item.Slug, "Page document does not exist and is skipped")
				continue
			}
			node.Children = append(node.Children, &Page{
				Title: item.Title,
				Slug:  item.Slug,
				Path:  b.url(append(segments[:len(segments):len(segments)], item.Slug)...),
				Order: item.Order,
				Icon:  item.Icon,
			})
		}
	}

	sort.SliceStable(node.Children, func(i, j int) bool {
		return node.Children[i].ItemOrder() < node.Children[j].ItemOrder()
	})

	b.opts.Logger.Debug("Category resolved", logfields.Dir(rel), logfields.Count(len(node.Children)))
	return node
}

func (b *Builder) url(segments ...string) string {
	return b.opts.URLPrefix + "/" + strings.Join(segments, "/")
}

func (b *Builder) warn(code diagnostics.Code, dir, slug, message string) {
	b.opts.Collector.Add(diagnostics.Issue{Code: code, Dir: dir, Slug: slug, Message: message})
}

// validSegment reports whether slug can name a single directory entry.
func validSegment(slug string) bool {
	return slug != "" && slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`)
}

// stateKey identifies a directory independently of the symlinks used to
// reach it.
func stateKey(dir string) string {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		return real
	}
	return filepath.Clean(dir)
}
