package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	gatherer         prom.Gatherer
	stageDuration    *prom.HistogramVec
	buildDuration    prom.Histogram
	stageResults     *prom.CounterVec
	buildOutcome     *prom.CounterVec
	issues           *prom.CounterVec
	synthConcurrency prom.Gauge
	documents        prom.Gauge
	manifests        prom.Gauge
	pages            prom.Gauge
	maxDepth         prom.Gauge
}

// NewPrometheusRecorder constructs metrics and registers them on reg. A nil
// reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{gatherer: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.issues = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "issues_total",
		Help:      "Recorded content issues by code",
	}, []string{"code"})
	pr.synthConcurrency = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "synth_concurrency",
		Help:      "Worker count used for manifest synthesis",
	})
	pr.documents = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "documents",
		Help:      "Documents read by the last build",
	})
	pr.manifests = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "manifests",
		Help:      "Directory manifests present after the last build",
	})
	pr.pages = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "pages",
		Help:      "Pages in the last generated navigation tree",
	})
	pr.maxDepth = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "tree_max_depth",
		Help:      "Deepest category nesting in the last generated navigation tree",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.issues, pr.synthConcurrency, pr.documents, pr.manifests, pr.pages, pr.maxDepth)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncIssue(code string) {
	if p == nil {
		return
	}
	p.issues.WithLabelValues(code).Inc()
}

func (p *PrometheusRecorder) SetSynthConcurrency(n int) {
	if p == nil {
		return
	}
	p.synthConcurrency.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveTree(documents, manifests, pages, maxDepth int) {
	if p == nil {
		return
	}
	p.documents.Set(float64(documents))
	p.manifests.Set(float64(manifests))
	p.pages.Set(float64(pages))
	p.maxDepth.Set(float64(maxDepth))
}

// WriteTextfile writes all gathered metrics to path in the text exposition
// format, atomically, for the node exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
