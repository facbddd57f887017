package eventstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testBuildID = "build-123"

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEventStoreAppendAndRetrieve(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	event := &BaseEvent{
		EventBuildID:   testBuildID,
		EventType:      "TestEvent",
		EventTimestamp: at,
		EventPayload:   []byte(`{"test": "data"}`),
		EventMetadata:  map[string]string{"key": "value"},
	}
	require.NoError(t, store.Append(ctx, event))

	events, err := store.GetByBuildID(ctx, testBuildID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	require.Equal(t, testBuildID, got.BuildID())
	require.Equal(t, "TestEvent", got.Type())
	require.JSONEq(t, `{"test": "data"}`, string(got.Payload()))
	require.Equal(t, "value", got.Metadata()["key"])
	require.True(t, at.Equal(got.Timestamp()))
	require.Positive(t, got.ID())
}

func TestEventStoreGetRange(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		ev, err := NewBuildStarted("b"+string(rune('0'+i)), base.Add(time.Duration(i)*time.Hour), BuildStartedPayload{Root: "docs"})
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, ev))
	}

	events, err := store.GetRange(ctx, base.Add(30*time.Minute), base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "b1", events[0].BuildID())
	require.Equal(t, "b2", events[1].BuildID())
}

func TestEventStoreRecentBuildIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		ev, err := NewBuildStarted(id, base.Add(time.Duration(i)*time.Minute), BuildStartedPayload{})
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, ev))
	}

	ids, err := store.RecentBuildIDs(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"new", "mid"}, ids)
}

func TestEventStorePersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)

	ev, err := NewBuildStarted(testBuildID, time.Now(), BuildStartedPayload{Root: "docs"})
	require.NoError(t, err)
	require.NoError(t, store.Append(t.Context(), ev))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	events, err := reopened.GetByBuildID(t.Context(), testBuildID)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestEventStoreClosedAppendFails(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ev, err := NewBuildStarted(testBuildID, time.Now(), BuildStartedPayload{})
	require.NoError(t, err)

	err = store.Append(t.Context(), ev)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrEventAppendFailed))
}
