package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// BuildStartedPayload describes the inputs of a build.
type BuildStartedPayload struct {
	Root       string `json:"root"`
	ConfigPath string `json:"config_path,omitempty"`
	Version    string `json:"version,omitempty"`
}

// BuildCompletedPayload summarises a finished build.
type BuildCompletedPayload struct {
	Outcome          string            `json:"outcome"` // success|warning|failed|canceled
	DurationMS       int64             `json:"duration_ms"`
	Documents        int               `json:"documents"`
	Manifests        int               `json:"manifests"`
	Pages            int               `json:"pages"`
	Issues           int               `json:"issues"`
	InputFingerprint string            `json:"input_fingerprint,omitempty"`
	Artifacts        map[string]string `json:"artifacts,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// IssueRecordedPayload is one content issue raised during a build.
type IssueRecordedPayload struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Dir      string `json:"dir,omitempty"`
	Path     string `json:"path,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Message  string `json:"message"`
}

// NewBuildStarted creates a BuildStarted event.
func NewBuildStarted(buildID string, at time.Time, payload BuildStartedPayload) (Event, error) {
	return newEvent(buildID, TypeBuildStarted, at, payload)
}

// NewBuildCompleted creates a BuildCompleted event.
func NewBuildCompleted(buildID string, at time.Time, payload BuildCompletedPayload) (Event, error) {
	return newEvent(buildID, TypeBuildCompleted, at, payload)
}

// NewIssueRecorded creates an IssueRecorded event.
func NewIssueRecorded(buildID string, at time.Time, payload IssueRecordedPayload) (Event, error) {
	return newEvent(buildID, TypeIssueRecorded, at, payload)
}

func newEvent(buildID, eventType string, at time.Time, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.EventStoreError("failed to marshal "+eventType+" payload").
			WithCause(err).
			WithContext("build_id", buildID).
			Build()
	}
	return &BaseEvent{
		EventBuildID:   buildID,
		EventType:      eventType,
		EventTimestamp: at,
		EventPayload:   data,
	}, nil
}
