package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for build and stage metrics.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed|canceled
	IncIssue(code string)
	SetSynthConcurrency(n int)
	ObserveTree(documents, manifests, pages, maxDepth int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) IncIssue(string)                            {}
func (NoopRecorder) SetSynthConcurrency(int)                    {}
func (NoopRecorder) ObserveTree(int, int, int, int)             {}
