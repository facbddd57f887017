package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func appendAll(t *testing.T, store Store, events ...Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, store.Append(t.Context(), ev))
	}
}

func mustEvent(t *testing.T) func(Event, error) Event {
	return func(ev Event, err error) Event {
		t.Helper()
		require.NoError(t, err)
		return ev
	}
}

func TestSummarize(t *testing.T) {
	must := mustEvent(t)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	events := []Event{
		must(NewBuildStarted(testBuildID, start, BuildStartedPayload{Root: "content/docs"})),
		must(NewIssueRecorded(testBuildID, start, IssueRecordedPayload{Code: "dangling_page", Severity: "warning"})),
		must(NewIssueRecorded(testBuildID, start, IssueRecordedPayload{Code: "dangling_page", Severity: "warning"})),
		must(NewIssueRecorded("other", start, IssueRecordedPayload{Code: "manifest_missing"})),
		must(NewBuildCompleted(testBuildID, start.Add(2*time.Second), BuildCompletedPayload{
			Outcome:    "warning",
			DurationMS: 2000,
			Documents:  7,
			Manifests:  3,
			Pages:      5,
			Issues:     2,
			Artifacts:  map[string]string{"navigation": "generated/navigation.json"},
		})),
	}

	summary := Summarize(testBuildID, events)
	require.Equal(t, "content/docs", summary.Root)
	require.Equal(t, "warning", summary.Status)
	require.Equal(t, start, summary.StartedAt)
	require.NotNil(t, summary.CompletedAt)
	require.Equal(t, 2*time.Second, summary.Duration)
	require.Equal(t, 7, summary.Documents)
	require.Equal(t, 5, summary.Pages)
	require.Equal(t, map[string]int{"dangling_page": 2}, summary.IssueCodes)
	require.Equal(t, "generated/navigation.json", summary.Artifacts["navigation"])
}

func TestSummarize_RunningBuild(t *testing.T) {
	must := mustEvent(t)
	summary := Summarize(testBuildID, []Event{
		must(NewBuildStarted(testBuildID, time.Now(), BuildStartedPayload{})),
	})
	require.Equal(t, buildStatusRunning, summary.Status)
	require.Nil(t, summary.CompletedAt)
}

func TestRecentBuilds(t *testing.T) {
	must := mustEvent(t)
	store := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	appendAll(t, store,
		must(NewBuildStarted("first", base, BuildStartedPayload{Root: "a"})),
		must(NewBuildCompleted("first", base.Add(time.Second), BuildCompletedPayload{Outcome: "success"})),
		must(NewBuildStarted("second", base.Add(time.Minute), BuildStartedPayload{Root: "b"})),
		must(NewBuildCompleted("second", base.Add(time.Minute+time.Second), BuildCompletedPayload{Outcome: "failed", Error: "root missing"})),
	)

	builds, err := RecentBuilds(t.Context(), store, 10)
	require.NoError(t, err)
	require.Len(t, builds, 2)
	require.Equal(t, "second", builds[0].BuildID)
	require.Equal(t, "failed", builds[0].Status)
	require.Equal(t, "root missing", builds[0].Error)
	require.Equal(t, "first", builds[1].BuildID)
	require.Equal(t, "success", builds[1].Status)
}
