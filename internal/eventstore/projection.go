package eventstore

import (
	"context"
	"encoding/json"
	"time"
)

const (
	buildStatusRunning = "running"
)

// BuildSummary is a read model of one build reconstructed from its events.
type BuildSummary struct {
	BuildID     string            `json:"build_id"`
	Root        string            `json:"root"`
	Status      string            `json:"status"` // running, or the completed outcome
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Duration    time.Duration     `json:"duration,omitempty"`
	Documents   int               `json:"documents"`
	Manifests   int               `json:"manifests"`
	Pages       int               `json:"pages"`
	Issues      int               `json:"issues"`
	IssueCodes  map[string]int    `json:"issue_codes,omitempty"`
	Fingerprint string            `json:"input_fingerprint,omitempty"`
	Artifacts   map[string]string `json:"artifacts,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Summarize folds the events of one build into a BuildSummary. Events of
// other builds are ignored.
func Summarize(buildID string, events []Event) *BuildSummary {
	summary := &BuildSummary{BuildID: buildID, Status: buildStatusRunning}
	for _, event := range events {
		if event.BuildID() != buildID {
			continue
		}
		apply(summary, event)
	}
	return summary
}

func apply(summary *BuildSummary, event Event) {
	switch event.Type() {
	case TypeBuildStarted:
		summary.StartedAt = event.Timestamp()
		var payload BuildStartedPayload
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Root = payload.Root
		}

	case TypeIssueRecorded:
		var payload IssueRecordedPayload
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			if summary.IssueCodes == nil {
				summary.IssueCodes = make(map[string]int)
			}
			summary.IssueCodes[payload.Code]++
		}

	case TypeBuildCompleted:
		done := event.Timestamp()
		summary.CompletedAt = &done
		var payload BuildCompletedPayload
		if err := json.Unmarshal(event.Payload(), &payload); err == nil {
			summary.Status = payload.Outcome
			summary.Duration = time.Duration(payload.DurationMS) * time.Millisecond
			summary.Documents = payload.Documents
			summary.Manifests = payload.Manifests
			summary.Pages = payload.Pages
			summary.Issues = payload.Issues
			summary.Fingerprint = payload.InputFingerprint
			summary.Artifacts = payload.Artifacts
			summary.Error = payload.Error
		}
	}
}

// RecentBuilds returns summaries of the most recent builds, newest first.
func RecentBuilds(ctx context.Context, store Store, limit int) ([]*BuildSummary, error) {
	ids, err := store.RecentBuildIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]*BuildSummary, 0, len(ids))
	for _, id := range ids {
		events, err := store.GetByBuildID(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summarize(id, events))
	}
	return summaries, nil
}
