package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialmaster/docktui/internal/docker"
	"github.com/dialmaster/docktui/internal/domain"
)

// startedManager returns a manager with one live session for a stopped,
// empty container. The worker's single no_logs message is waited out and
// discarded so tests can seed the queue themselves.
func startedManager(t *testing.T) (*Manager, *Streamer, int) {
	t.Helper()

	rt := newFakeRuntime()
	rt.addContainer(docker.ContainerInfo{
		ID: "quiet1", Name: "quiet", Status: "Exited (0) 1 hour ago", Running: false,
	}, "")

	s := NewStreamer(rt)
	m := NewManager(s, "", "")
	t.Cleanup(func() { m.Clear() })

	id, err := m.StartStreaming(domain.ContainerRef("quiet1"), "", "")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return s.Queue().Len() >= 1
	}, 2*time.Second, 5*time.Millisecond)
	s.Queue().Clear()

	return m, s, id
}

func TestNewManager_DefaultSettings(t *testing.T) {
	m := NewManager(nil, "", "")

	assert.Equal(t, "200", m.Tail())
	assert.Equal(t, "15m", m.Since())
}

func TestNewManager_ExplicitSettings(t *testing.T) {
	m := NewManager(nil, "50", "1h")

	assert.Equal(t, "50", m.Tail())
	assert.Equal(t, "1h", m.Since())
}

func TestManager_UnavailableWithoutStreamer(t *testing.T) {
	m := NewManager(nil, "", "")

	assert.False(t, m.Available())

	_, err := m.StartStreaming(domain.ContainerRef("c1"), "", "")
	assert.ErrorIs(t, err, domain.ErrStreamerUnavailable)

	assert.Equal(t, Result{}, m.ProcessQueue(50))
	m.StopStreaming(true)
}

func TestManager_ProcessQueueClassifiesMessages(t *testing.T) {
	m, s, id := startedManager(t)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "hello"})
	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindError, Payload: "boom"})
	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "world"})

	result := m.ProcessQueue(50)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, []string{"hello", "world"}, result.Lines)
	assert.Equal(t, []string{"boom"}, result.Errors)
	assert.False(t, result.NoLogs)
}

func TestManager_ProcessQueueDropsStaleSessions(t *testing.T) {
	m, s, staleID := startedManager(t)

	// Start a second session so the first session's nonzero id is genuinely
	// stale; id 0 is the untagged value that is always accepted.
	id, err := m.StartStreaming(domain.ContainerRef("quiet1"), "", "")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return s.Queue().Len() >= 1
	}, 2*time.Second, 5*time.Millisecond)
	s.Queue().Clear()

	s.Queue().Push(domain.Message{SessionID: staleID, Kind: domain.KindLog, Payload: "stale"})
	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "current"})
	s.Queue().Push(domain.Message{SessionID: id + 7, Kind: domain.KindLog, Payload: "future"})

	result := m.ProcessQueue(50)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, []string{"current"}, result.Lines)
}

func TestManager_ProcessQueueAlwaysAcceptsUntaggedMessages(t *testing.T) {
	m, s, _ := startedManager(t)

	s.Queue().Push(domain.Message{SessionID: 0, Kind: domain.KindLog, Payload: "untagged"})

	result := m.ProcessQueue(50)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, []string{"untagged"}, result.Lines)
}

func TestManager_NoLogsMessageSetsStickyState(t *testing.T) {
	m, s, id := startedManager(t)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindNoLogs})

	result := m.ProcessQueue(50)

	assert.True(t, result.NoLogs)
	assert.True(t, m.HasNoLogsMessage())
}

func TestManager_StartStreamingResetsStickyState(t *testing.T) {
	m, s, id := startedManager(t)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindNoLogs})
	m.ProcessQueue(50)
	require.True(t, m.HasNoLogsMessage())

	newID, err := m.StartStreaming(domain.ContainerRef("quiet1"), "", "")
	require.NoError(t, err)

	assert.Equal(t, id+1, newID)
	assert.False(t, m.HasNoLogsMessage())
	assert.True(t, m.IsLoading())
}

func TestManager_ProcessedMessagesEndLoading(t *testing.T) {
	m, s, id := startedManager(t)
	require.True(t, m.IsLoading())

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "first"})
	m.ProcessQueue(50)

	assert.False(t, m.IsLoading())
}

func TestManager_UpdateSettingsKeepsUnsetValues(t *testing.T) {
	m := NewManager(nil, "", "")

	m.UpdateSettings("1000", "")
	assert.Equal(t, "1000", m.Tail())
	assert.Equal(t, "15m", m.Since())

	m.UpdateSettings("", "1d")
	assert.Equal(t, "1000", m.Tail())
	assert.Equal(t, "1d", m.Since())
}

func TestManager_RestartStreamingRequiresCurrentItem(t *testing.T) {
	rt := newFakeRuntime()
	m := NewManager(NewStreamer(rt), "", "")

	assert.False(t, m.RestartStreaming())
}

func TestManager_RestartStreamingBumpsSession(t *testing.T) {
	m, s, id := startedManager(t)

	require.True(t, m.RestartStreaming())
	assert.Equal(t, id+1, m.CurrentSessionID())

	require.Eventually(t, func() bool {
		return s.Queue().Len() >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestManager_ClearResetsEverything(t *testing.T) {
	m, _, _ := startedManager(t)
	require.False(t, m.CurrentItem().IsZero())

	m.Clear()

	assert.True(t, m.CurrentItem().IsZero())
	assert.False(t, m.IsLoading())
	assert.False(t, m.HasNoLogsMessage())
}
