// Package pipeline runs one docnav build: synthesize manifests, assemble the
// navigation tree, flatten it and write the artifacts.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/diagnostics"
	docerrors "git.home.luguber.info/inful/docnav/internal/docs/errors"
	"git.home.luguber.info/inful/docnav/internal/eventstore"
	"git.home.luguber.info/inful/docnav/internal/flatten"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/fsutil"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
	"git.home.luguber.info/inful/docnav/internal/observability"
	"git.home.luguber.info/inful/docnav/internal/scan"
	"git.home.luguber.info/inful/docnav/internal/synth"
)

// Options carries the collaborators of a build. Every field is optional.
type Options struct {
	BuildID    string // generated when empty
	ConfigPath string // recorded in build history only
	Version    string // recorded in build history only
	Recorder   metrics.Recorder
	Store      eventstore.Store
	Logger     *slog.Logger
	Now        func() time.Time
}

type runner struct {
	cfg       *config.Config
	opts      Options
	report    *Report
	collector *diagnostics.Collector

	lister    *scan.Lister
	structure *navtree.Structure
	pages     []flatten.Entry
}

// Run executes a build. The returned report is never nil; the error is
// non-nil only for fatal conditions such as a missing documentation root.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	if opts.BuildID == "" {
		opts.BuildID = uuid.NewString()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &runner{
		cfg:       cfg,
		opts:      opts,
		report:    newReport(opts.BuildID, cfg.Docs.Root, opts.Now()),
		collector: diagnostics.NewCollector(),
	}

	ctx = observability.WithBuildID(ctx, opts.BuildID)
	ctx = observability.WithRoot(ctx, cfg.Docs.Root)
	observability.InfoContext(ctx, "Build started")

	r.appendEvent(ctx, func(at time.Time) (eventstore.Event, error) {
		return eventstore.NewBuildStarted(opts.BuildID, at, eventstore.BuildStartedPayload{
			Root:       cfg.Docs.Root,
			ConfigPath: opts.ConfigPath,
			Version:    opts.Version,
		})
	})

	stages := []struct {
		name StageName
		fn   func(context.Context) error
	}{
		{StagePrepare, r.prepare},
		{StageSynthesize, r.synthesize},
		{StageBuildTree, r.buildTree},
		{StageFlatten, r.flatten},
		{StageWriteArtifacts, r.writeArtifacts},
	}

	var runErr error
	for _, st := range stages {
		if err := r.runStage(ctx, st.name, st.fn); err != nil {
			runErr = err
			break
		}
	}

	r.complete(ctx, runErr)
	return r.report, runErr
}

func (r *runner) runStage(ctx context.Context, name StageName, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, string(name))
	start := time.Now()
	err := fn(ctx)
	if err == nil {
		err = ctx.Err()
	}
	dur := time.Since(start)

	r.report.StageDurations[string(name)] = dur.Milliseconds()
	r.opts.Recorder.ObserveStageDuration(string(name), dur)

	if err == nil {
		r.opts.Recorder.IncStageResult(string(name), metrics.ResultSuccess)
		observability.DebugContext(ctx, "Stage completed", logfields.DurationMS(float64(dur.Microseconds())/1000))
		return nil
	}

	se := newStageError(name, err)
	result := metrics.ResultFatal
	if se.Kind == StageErrorCanceled {
		result = metrics.ResultCanceled
	}
	r.opts.Recorder.IncStageResult(string(name), result)
	observability.ErrorContext(ctx, "Stage failed", logfields.Error(err))
	return se
}

func (r *runner) prepare(_ context.Context) error {
	root := r.cfg.Docs.Root
	if !scan.DirExists(root) {
		return ferrors.DocsError(fmt.Sprintf("documentation root %s does not exist", root)).
			WithCause(docerrors.ErrRootNotFound).
			WithContext("root", root).
			Build()
	}
	matcher, err := scan.NewMatcher(r.cfg.Docs.Exclude)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid exclude pattern").
			Fatal().
			Build()
	}
	r.lister = scan.NewLister(r.cfg.Docs.Extensions, matcher)
	return nil
}

func (r *runner) synthesize(ctx context.Context) error {
	concurrency := r.cfg.Synth.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	r.opts.Recorder.SetSynthConcurrency(concurrency)

	res, err := synth.New(synth.Options{
		Root:          r.cfg.Docs.Root,
		Lister:        r.lister,
		ManifestName:  r.cfg.Docs.ManifestName,
		CategoryIcons: r.cfg.Docs.CategoryIcons,
		Concurrency:   concurrency,
		Collector:     r.collector,
		Logger:        r.opts.Logger,
	}).Synthesize(ctx)
	if err != nil {
		return err
	}

	r.report.Documents = len(res.Documents)
	r.report.Manifests = len(res.Manifests)
	r.report.ManifestsRewritten = res.Rewritten
	r.report.InputFingerprint = inputFingerprint(res.Documents)
	observability.InfoContext(ctx, "Manifests synthesized",
		slog.Int("documents", len(res.Documents)),
		slog.Int("manifests", len(res.Manifests)),
		slog.Int("rewritten", res.Rewritten))
	return nil
}

func (r *runner) buildTree(ctx context.Context) error {
	structure, err := navtree.New(navtree.Options{
		Root:         r.cfg.Docs.Root,
		Lister:       r.lister,
		ManifestName: r.cfg.Docs.ManifestName,
		URLPrefix:    r.cfg.Docs.URLPrefix,
		Collector:    r.collector,
		Logger:       r.opts.Logger,
		Now:          r.opts.Now,
	}).Build(ctx)
	if err != nil {
		return err
	}
	r.structure = structure
	return nil
}

func (r *runner) flatten(ctx context.Context) error {
	r.pages = flatten.Flatten(r.structure)
	r.report.Stats = flatten.Compute(r.structure)
	observability.InfoContext(ctx, "Navigation assembled",
		slog.Int("categories", r.report.Stats.Categories),
		slog.Int("pages", r.report.Stats.Pages),
		slog.Int("max_depth", r.report.Stats.MaxDepth))
	return nil
}

func (r *runner) writeArtifacts(ctx context.Context) error {
	artifacts := []struct {
		name string
		path string
		v    any
	}{
		{"navigation", r.cfg.Output.Navigation, r.structure},
		{"pages", r.cfg.Output.Pages, r.pages},
	}
	for _, a := range artifacts {
		data, err := json.MarshalIndent(a.v, "", "  ")
		if err != nil {
			return ferrors.InternalError("failed to encode artifact").
				WithCause(err).
				WithContext("artifact", a.name).
				Build()
		}
		if err := fsutil.WriteFileAtomic(a.path, append(data, '\n')); err != nil {
			return ferrors.FileSystemError("failed to write artifact").
				WithCause(fmt.Errorf("%w: %w", docerrors.ErrArtifactWrite, err)).
				WithContext("artifact", a.name).
				WithContext("path", a.path).
				Fatal().
				Build()
		}
		r.report.Artifacts[a.name] = a.path
		observability.DebugContext(ctx, "Artifact written", logfields.Output(a.path))
	}
	return nil
}

// complete finalizes the report, flushes diagnostics and publishes metrics
// and history for the build.
func (r *runner) complete(ctx context.Context, runErr error) {
	r.report.Issues = r.collector.Issues()
	r.report.finish(r.opts.Now(), runErr)
	r.collector.Flush(ctx, r.opts.Logger)

	rec := r.opts.Recorder
	for _, issue := range r.report.Issues {
		rec.IncIssue(string(issue.Code))
	}
	rec.ObserveTree(r.report.Documents, r.report.Manifests, r.report.Stats.Pages, r.report.Stats.MaxDepth)
	rec.ObserveBuildDuration(time.Duration(r.report.DurationMS) * time.Millisecond)
	rec.IncBuildOutcome(string(r.report.Outcome))

	for _, issue := range r.report.Issues {
		r.appendEvent(ctx, func(at time.Time) (eventstore.Event, error) {
			return eventstore.NewIssueRecorded(r.report.BuildID, at, eventstore.IssueRecordedPayload{
				Code:     string(issue.Code),
				Severity: string(issue.Severity),
				Dir:      issue.Dir,
				Path:     issue.Path,
				Slug:     issue.Slug,
				Message:  issue.Message,
			})
		})
	}
	r.appendEvent(ctx, func(at time.Time) (eventstore.Event, error) {
		return eventstore.NewBuildCompleted(r.report.BuildID, at, eventstore.BuildCompletedPayload{
			Outcome:          string(r.report.Outcome),
			DurationMS:       r.report.DurationMS,
			Documents:        r.report.Documents,
			Manifests:        r.report.Manifests,
			Pages:            r.report.Stats.Pages,
			Issues:           len(r.report.Issues),
			InputFingerprint: r.report.InputFingerprint,
			Artifacts:        r.report.Artifacts,
			Error:            r.report.Error,
		})
	})

	if path := r.cfg.Output.Report; path != "" {
		if err := r.report.Persist(path); err != nil {
			observability.WarnContext(ctx, "Build report could not be written", logfields.Output(path), logfields.Error(err))
		}
	}

	attrs := []slog.Attr{
		slog.String("outcome", string(r.report.Outcome)),
		logfields.Count(len(r.report.Issues)),
		logfields.DurationMS(float64(r.report.DurationMS)),
	}
	if runErr != nil {
		observability.ErrorContext(ctx, "Build failed", append(attrs, logfields.Error(runErr))...)
		return
	}
	observability.InfoContext(ctx, "Build completed", attrs...)
}

// appendEvent records a history event. History is auxiliary: failures are
// logged and never fail the build.
func (r *runner) appendEvent(ctx context.Context, build func(time.Time) (eventstore.Event, error)) {
	if r.opts.Store == nil {
		return
	}
	event, err := build(r.opts.Now())
	if err == nil {
		err = r.opts.Store.Append(context.WithoutCancel(ctx), event)
	}
	if err != nil {
		observability.WarnContext(ctx, "Build history event not recorded", logfields.Error(err))
	}
}
