package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/eventstore"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Report string `help:"Write the build report JSON to this path (overrides output.report)" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if b.Report != "" {
		cfg.Output.Report = b.Report
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return RunBuild(ctx, g, cfg, root.Config)
}

// RunBuild executes one pipeline run with the recorder and history store the
// configuration asks for.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, configPath string) error {
	opts := pipeline.Options{
		ConfigPath: configPath,
		Version:    g.Version,
		Recorder:   metrics.NoopRecorder{},
		Logger:     slog.Default(),
	}

	var prometheus *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prometheus = metrics.NewPrometheusRecorder(prom.NewRegistry())
		opts.Recorder = prometheus
	}

	if cfg.History.Database != "" {
		store, err := eventstore.NewSQLiteStore(cfg.History.Database)
		if err != nil {
			slog.Warn("Build history disabled", logfields.Path(cfg.History.Database), logfields.Error(err))
		} else {
			defer func() { _ = store.Close() }()
			opts.Store = store
		}
	}

	report, err := pipeline.Run(ctx, cfg, opts)

	if prometheus != nil {
		if werr := prometheus.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			slog.Warn("Metrics textfile not written", logfields.Output(cfg.Metrics.Textfile), logfields.Error(werr))
		}
	}

	_, _ = fmt.Fprintln(g.Out, report.Summary())
	return err
}
