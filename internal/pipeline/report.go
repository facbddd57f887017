package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/docnav/internal/diagnostics"
	"git.home.luguber.info/inful/docnav/internal/flatten"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/fsutil"
)

// BuildOutcome is the overall result of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// ReportSchemaVersion is bumped on incompatible report changes.
const ReportSchemaVersion = 1

// Report captures what one build read, produced and complained about.
type Report struct {
	SchemaVersion      int                 `json:"schema_version"`
	BuildID            string              `json:"build_id"`
	Root               string              `json:"root"`
	Start              time.Time           `json:"start"`
	End                time.Time           `json:"end"`
	DurationMS         int64               `json:"duration_ms"`
	Outcome            BuildOutcome        `json:"outcome"`
	Documents          int                 `json:"documents"`
	Manifests          int                 `json:"manifests"`
	ManifestsRewritten int                 `json:"manifests_rewritten"`
	Stats              flatten.Stats       `json:"stats"`
	StageDurations     map[string]int64    `json:"stage_durations_ms"`
	Issues             []diagnostics.Issue `json:"issues"`
	InputFingerprint   string              `json:"input_fingerprint,omitempty"`
	Artifacts          map[string]string   `json:"artifacts,omitempty"`
	Error              string              `json:"error,omitempty"`
}

func newReport(buildID, root string, start time.Time) *Report {
	return &Report{
		SchemaVersion:  ReportSchemaVersion,
		BuildID:        buildID,
		Root:           root,
		Start:          start,
		Stats:          flatten.Stats{PagesByCategory: map[string]int{}},
		StageDurations: make(map[string]int64),
		Issues:         []diagnostics.Issue{},
		Artifacts:      make(map[string]string),
	}
}

// finish stamps the end time and derives the outcome from err and issues.
func (r *Report) finish(end time.Time, err error) {
	r.End = end
	r.DurationMS = end.Sub(r.Start).Milliseconds()
	switch {
	case err != nil:
		r.Error = err.Error()
		r.Outcome = OutcomeFailed
		if se, ok := err.(*StageError); ok && se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
		}
	case len(r.Issues) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("documents=%d manifests=%d categories=%d pages=%d depth=%d issues=%d duration=%s outcome=%s",
		r.Documents, r.Manifests, r.Stats.Categories, r.Stats.Pages, r.Stats.MaxDepth, len(r.Issues),
		(time.Duration(r.DurationMS) * time.Millisecond).String(), r.Outcome)
}

// Persist writes the report as indented JSON to path atomically.
func (r *Report) Persist(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	return fsutil.WriteFileAtomic(path, append(data, '\n'))
}

// inputFingerprint hashes the per-document fingerprints in path order so a
// change to any document, or to the document set, changes the result.
func inputFingerprint(docs []frontmatter.Document) string {
	h := sha256.New()
	for _, d := range docs {
		h.Write([]byte(d.RelPath))
		h.Write([]byte{0})
		h.Write([]byte(d.Fingerprint))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
