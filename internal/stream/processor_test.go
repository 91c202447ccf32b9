package stream

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialmaster/docktui/internal/docker"
	"github.com/dialmaster/docktui/internal/domain"
	"github.com/dialmaster/docktui/internal/logs"
)

// fakeDisplay records what the processor renders
type fakeDisplay struct {
	lines     []string
	text      string
	clears    int
	selecting bool
}

func (d *fakeDisplay) AppendLine(line string) { d.lines = append(d.lines, line) }

func (d *fakeDisplay) AppendLines(lines []string) { d.lines = append(d.lines, lines...) }

func (d *fakeDisplay) SetText(text string) {
	d.text = text
	d.lines = nil
}

func (d *fakeDisplay) Clear() {
	d.lines = nil
	d.text = ""
	d.clears++
}

func (d *fakeDisplay) IsSelecting() bool { return d.selecting }

func (d *fakeDisplay) HasContent() bool { return len(d.lines) > 0 || d.text != "" }

var _ Display = (*fakeDisplay)(nil)

// newProcessorHarness wires a processor over a live session for a stopped,
// empty container, with the worker's initial no_logs message discarded.
func newProcessorHarness(t *testing.T) (*Processor, *Manager, *Streamer, *fakeDisplay, int) {
	t.Helper()

	rt := newFakeRuntime()
	rt.addContainer(docker.ContainerInfo{
		ID: "web1", Name: "web", Status: "Exited (0) 1 hour ago", Running: false,
	}, "")

	s := NewStreamer(rt)
	m := NewManager(s, "", "")
	t.Cleanup(func() { m.Clear() })

	id, err := m.StartStreaming(domain.ContainerRef("web1"), "", "")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return s.Queue().Len() >= 1
	}, 2*time.Second, 5*time.Millisecond)
	s.Queue().Clear()

	display := &fakeDisplay{}
	engine := logs.NewEngine(100)
	p := NewProcessor(m, engine, display)
	return p, m, s, display, id
}

func TestProcessor_RendersLogLines(t *testing.T) {
	p, _, s, display, id := newProcessorHarness(t)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "first"})
	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "second"})

	result := p.Tick(50)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, []string{"first", "second"}, display.lines)
}

func TestProcessor_RendersErrorsWithPrefix(t *testing.T) {
	p, _, s, display, id := newProcessorHarness(t)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindError, Payload: "Container web1 not found"})

	p.Tick(50)

	assert.Equal(t, []string{"ERROR: Container web1 not found"}, display.lines)
}

func TestProcessor_NoLogsReplacesPaneWithExplanation(t *testing.T) {
	p, m, s, display, id := newProcessorHarness(t)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindNoLogs})

	p.Tick(50)

	assert.True(t, strings.HasPrefix(display.text, "No logs found for container: web1"))
	assert.Contains(t, display.text, "Waiting for new logs...")
	assert.True(t, m.HasNoLogsMessage())
}

func TestProcessor_LateLinesClearNoLogsMessage(t *testing.T) {
	p, m, s, display, id := newProcessorHarness(t)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindNoLogs})
	p.Tick(50)
	require.True(t, m.HasNoLogsMessage())

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "late line"})
	p.Tick(50)

	assert.False(t, m.HasNoLogsMessage())
	assert.Empty(t, display.text)
	assert.Equal(t, []string{"late line"}, display.lines)
}

func TestProcessor_FilteredOutLinesShowNoMatches(t *testing.T) {
	p, _, s, display, id := newProcessorHarness(t)
	p.engine.SetFilter("nomatch")

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "alpha"})
	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "beta"})

	result := p.Tick(50)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Matched)
	assert.Equal(t, "No log lines match filter", display.text)
}

func TestProcessor_MatchingLineClearsNoMatches(t *testing.T) {
	p, m, s, display, id := newProcessorHarness(t)
	p.engine.SetFilter("error")

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "all good"})
	p.Tick(50)
	require.True(t, m.showingNoMatches)

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "ERROR: disk full"})
	p.Tick(50)

	assert.False(t, m.showingNoMatches)
	assert.Equal(t, []string{"ERROR: disk full"}, display.lines)
}

func TestProcessor_NoLogsMessageTakesPrecedenceOverNoMatches(t *testing.T) {
	p, _, s, display, id := newProcessorHarness(t)
	p.engine.SetFilter("nomatch")

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindNoLogs})
	p.Tick(50)

	assert.True(t, strings.HasPrefix(display.text, "No logs found for"))

	// Further empty ticks must not replace it with the no-matches message.
	p.Tick(50)
	assert.True(t, strings.HasPrefix(display.text, "No logs found for"))
}

func TestProcessor_SkipsWhileSelecting(t *testing.T) {
	p, _, s, display, id := newProcessorHarness(t)
	display.selecting = true

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "held back"})

	result := p.Tick(50)

	assert.Equal(t, 0, result.Processed)
	assert.Empty(t, display.lines)
	assert.Equal(t, 1, s.Queue().Len())
}

func TestProcessor_UnavailableManagerSkips(t *testing.T) {
	display := &fakeDisplay{}
	p := NewProcessor(NewManager(nil, "", ""), logs.NewEngine(100), display)

	assert.Equal(t, TickResult{}, p.Tick(50))
}

func TestProcessor_LoadingMessageClearedByFirstLine(t *testing.T) {
	p, m, s, display, id := newProcessorHarness(t)

	display.SetText("Loading logs...")
	m.MarkLoadingMessage()

	s.Queue().Push(domain.Message{SessionID: id, Kind: domain.KindLog, Payload: "booted"})
	p.Tick(50)

	assert.Empty(t, display.text)
	assert.Equal(t, []string{"booted"}, display.lines)
}
