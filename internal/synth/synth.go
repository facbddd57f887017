package synth

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"git.home.luguber.info/inful/docnav/internal/diagnostics"
	docerrors "git.home.luguber.info/inful/docnav/internal/docs/errors"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/scan"
)

// Options configures a Synthesizer.
type Options struct {
	Root          string
	Lister        *scan.Lister
	ManifestName  string
	CategoryIcons map[string]string
	Concurrency   int // <= 0 → runtime.NumCPU()
	Collector     *diagnostics.Collector
	Logger        *slog.Logger
}

// Result summarises one synthesis run.
type Result struct {
	Directories int                    // directories visited below the root
	Manifests   []string               // root-relative manifest paths present after the run
	Rewritten   int                    // manifests whose content changed on disk
	Documents   []frontmatter.Document // every extracted document, by RelPath
}

// Synthesizer walks a documentation root and writes directory manifests.
type Synthesizer struct {
	opts Options

	mu        sync.Mutex
	listings  map[string]listingResult
	documents map[string]frontmatter.Document
}

type listingResult struct {
	listing scan.Listing
	ok      bool
}

// New returns a Synthesizer. A nil Lister falls back to the default
// extensions without exclude patterns.
func New(opts Options) *Synthesizer {
	if opts.Lister == nil {
		opts.Lister = scan.NewLister([]string{".md", ".mdx"}, nil)
	}
	if opts.ManifestName == "" {
		opts.ManifestName = manifest.DefaultFileName
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Synthesizer{
		opts:      opts,
		listings:  make(map[string]listingResult),
		documents: make(map[string]frontmatter.Document),
	}
}

// dirOutcome is what processing one directory reports back to the frontier
// loop.
type dirOutcome struct {
	manifest  string
	rewritten bool
	children  []string
}

// Synthesize writes manifests for every non-empty directory below the root.
// It fails only when the root itself cannot be listed or ctx is canceled.
func (s *Synthesizer) Synthesize(ctx context.Context) (*Result, error) {
	rootListing, err := s.opts.Lister.List(s.opts.Root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDocs, "documentation root cannot be listed").
			WithContext("root", s.opts.Root).
			Fatal().
			Build()
	}

	frontier := make([]string, 0, len(rootListing.Dirs))
	for _, d := range rootListing.Dirs {
		frontier = append(frontier, d.Path)
	}
	if n := len(rootListing.Documents); n > 0 {
		s.opts.Logger.Debug("Ignoring documents at documentation root",
			logfields.Root(s.opts.Root), logfields.Count(n))
	}

	result := &Result{}
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("synthesis canceled: %w", err)
		}
		outcomes := s.processFrontier(ctx, frontier)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("synthesis canceled: %w", err)
		}

		result.Directories += len(frontier)
		var next []string
		for _, o := range outcomes {
			if o.manifest != "" {
				result.Manifests = append(result.Manifests, o.manifest)
			}
			if o.rewritten {
				result.Rewritten++
			}
			next = append(next, o.children...)
		}
		frontier = next
	}

	sort.Strings(result.Manifests)
	result.Documents = s.extractedDocuments()
	return result, nil
}

// processFrontier handles every directory of one breadth-first level with a
// bounded worker pool. Outcomes are returned in frontier order.
func (s *Synthesizer) processFrontier(ctx context.Context, frontier []string) []dirOutcome {
	concurrency := s.opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	if concurrency > len(frontier) {
		concurrency = len(frontier)
	}

	outcomes := make([]dirOutcome, len(frontier))
	tasks := make(chan int)
	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for i := range tasks {
			select {
			case <-ctx.Done():
				return
			default:
			}
			outcomes[i] = s.processDir(frontier[i])
		}
	}

	wg.Add(concurrency)
	for range concurrency {
		go worker()
	}
	for i := range frontier {
		select {
		case <-ctx.Done():
			close(tasks)
			wg.Wait()
			return outcomes
		case tasks <- i:
		}
	}
	close(tasks)
	wg.Wait()
	return outcomes
}

// processDir builds and persists the manifest of one directory and returns
// the subdirectories to descend into.
func (s *Synthesizer) processDir(dir string) dirOutcome {
	rel := s.rel(dir)
	listing, ok := s.list(dir)
	if !ok || listing.Empty() {
		return dirOutcome{}
	}

	var indexMeta *frontmatter.Metadata
	if idx, found := listing.Index(); found {
		doc := s.extract(idx.Path)
		indexMeta = &doc.Metadata
	}
	hints := directoryHints(filepath.Base(dir), indexMeta, s.opts.CategoryIcons)

	m := &manifest.Manifest{
		Title:       hints.Title,
		Order:       hints.Order,
		Icon:        hints.Icon,
		Description: hints.Description,
		Collapsed:   hints.Collapsed,
		Items:       make([]manifest.Entry, 0, len(listing.Documents)+len(listing.Dirs)),
	}

	seen := make(map[string]string, len(listing.Documents)+len(listing.Dirs))
	claim := func(slug, name string) bool {
		if first, dup := seen[slug]; dup {
			s.opts.Collector.Add(diagnostics.Issue{
				Code:    diagnostics.CodeDuplicateSlug,
				Dir:     rel,
				Slug:    slug,
				Message: fmt.Sprintf("%q resolves to the same slug as %q and is ignored", name, first),
			})
			return false
		}
		seen[slug] = name
		return true
	}

	for _, d := range listing.Documents {
		if !claim(d.Slug, d.Name) {
			continue
		}
		if d.Slug == scan.IndexSlug {
			m.Items = append(m.Items, manifest.Entry{
				Title: indexMeta.TitleOr(hints.Title),
				Slug:  scan.IndexSlug,
				Order: IndexPageOrder,
				Type:  manifest.TypePage,
				Icon:  indexMeta.Icon,
			})
			continue
		}
		doc := s.extract(d.Path)
		m.Items = append(m.Items, manifest.Entry{
			Title: pageTitle(d.Slug, doc.Metadata),
			Slug:  d.Slug,
			Order: doc.Metadata.ResolveOrder(DefaultPageOrder),
			Type:  manifest.TypePage,
			Icon:  doc.Metadata.Icon,
		})
	}

	var children []string
	for _, sub := range listing.Dirs {
		subListing, ok := s.list(sub.Path)
		if !ok || subListing.Empty() {
			continue
		}
		if !claim(sub.Slug, sub.Name) {
			continue
		}
		var subIndex *frontmatter.Metadata
		if idx, found := subListing.Index(); found {
			doc := s.extract(idx.Path)
			subIndex = &doc.Metadata
		}
		sh := directoryHints(sub.Name, subIndex, s.opts.CategoryIcons)
		m.Items = append(m.Items, manifest.Entry{
			Title: sh.Title,
			Slug:  sub.Slug,
			Order: sh.Order,
			Type:  manifest.TypeCategory,
			Icon:  sh.Icon,
		})
		children = append(children, sub.Path)
	}

	m.SortItems()

	target := filepath.Join(dir, s.opts.ManifestName)
	changed, err := manifest.Write(target, m)
	if err != nil {
		writeErr := ferrors.ManifestError("manifest could not be written, directory is left without one").
			WithCause(fmt.Errorf("%w: %w", docerrors.ErrManifestWrite, err)).
			Warning().
			Build()
		s.opts.Collector.Add(diagnostics.Issue{
			Code:    diagnostics.CodeManifestWriteFailed,
			Dir:     rel,
			Message: writeErr.Error(),
		})
		return dirOutcome{children: children}
	}
	s.opts.Logger.Debug("Manifest synthesized",
		logfields.Dir(rel),
		logfields.Count(len(m.Items)),
		slog.Bool("rewritten", changed))

	return dirOutcome{
		manifest:  filepath.ToSlash(filepath.Join(rel, s.opts.ManifestName)),
		rewritten: changed,
		children:  children,
	}
}

// list returns the cached listing of dir, listing it on first use. An
// unreadable directory is reported once and yields ok=false.
func (s *Synthesizer) list(dir string) (scan.Listing, bool) {
	s.mu.Lock()
	cached, hit := s.listings[dir]
	s.mu.Unlock()
	if hit {
		return cached.listing, cached.ok
	}

	listing, err := s.opts.Lister.List(dir)
	res := listingResult{listing: listing, ok: err == nil}
	if err != nil {
		s.opts.Collector.Add(diagnostics.Issue{
			Code:    diagnostics.CodeDirectoryUnreadable,
			Dir:     s.rel(dir),
			Message: fmt.Sprintf("Directory could not be listed and is skipped: %v", err),
		})
	}

	s.mu.Lock()
	s.listings[dir] = res
	s.mu.Unlock()
	return res.listing, res.ok
}

// extract returns the cached document at path, extracting it on first use.
// A directory's index is read both as its parent's category hint and as the
// directory's own header; the cache keeps its warnings from doubling.
func (s *Synthesizer) extract(path string) frontmatter.Document {
	s.mu.Lock()
	doc, hit := s.documents[path]
	s.mu.Unlock()
	if hit {
		return doc
	}

	doc = frontmatter.Extract(path, s.rel(path), s.opts.Collector)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, raced := s.documents[path]; raced {
		return existing
	}
	s.documents[path] = doc
	return doc
}

func (s *Synthesizer) extractedDocuments() []frontmatter.Document {
	s.mu.Lock()
	docs := make([]frontmatter.Document, 0, len(s.documents))
	for _, d := range s.documents {
		docs = append(docs, d)
	}
	s.mu.Unlock()
	sort.Slice(docs, func(i, j int) bool { return docs[i].RelPath < docs[j].RelPath })
	return docs
}

func (s *Synthesizer) rel(path string) string {
	rel, err := filepath.Rel(s.opts.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
