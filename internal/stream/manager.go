package stream

import (
	"log"
	"strconv"

	"github.com/dialmaster/docktui/internal/constants"
	"github.com/dialmaster/docktui/internal/domain"
)

// Result is one tick's worth of classified queue output
type Result struct {
	Processed int
	Matched   int
	Lines     []string
	Errors    []string
	NoLogs    bool
}

// Manager is the single authority for the current streaming session. It
// owns the monotonically increasing session ID, the start/stop/restart
// lifecycle, and first-level message classification. All of its state is
// touched only from the consumer side; the streamer's workers communicate
// exclusively through the queue.
type Manager struct {
	streamer *Streamer

	currentSessionID int
	currentItem      domain.ItemRef

	// Sticky presentation state shared with the Processor.
	showingNoLogs    bool
	showingLoading   bool
	showingNoMatches bool
	logsLoading      bool

	tail  string
	since string
}

// NewManager creates a manager around the given streamer with initial log
// window settings. A nil streamer leaves the manager unavailable (the
// runtime could not be reached); every operation then degrades gracefully.
func NewManager(streamer *Streamer, tail, since string) *Manager {
	if tail == "" {
		tail = strconv.Itoa(constants.DefaultTail)
	}
	if since == "" {
		since = constants.DefaultSince
	}
	return &Manager{
		streamer: streamer,
		tail:     tail,
		since:    since,
	}
}

// Available reports whether streaming is possible at all
func (m *Manager) Available() bool {
	return m.streamer != nil
}

// StartStreaming starts a new session for the given item, superseding any
// previous session, and returns the new session ID. Empty tail/since use
// the manager's current settings.
func (m *Manager) StartStreaming(ref domain.ItemRef, tail, since string) (int, error) {
	if m.streamer == nil {
		return 0, domain.ErrStreamerUnavailable
	}

	m.currentItem = ref

	m.showingNoLogs = false
	m.showingNoMatches = false
	m.logsLoading = true

	if tail == "" {
		tail = m.tail
	}
	if since == "" {
		since = m.since
	}

	m.currentSessionID = m.streamer.Start(ref, tail, since)
	log.Printf("started log streaming for %s (session %d)", ref, m.currentSessionID)
	return m.currentSessionID, nil
}

// StopStreaming stops the current session. With wait set it blocks until
// the worker exits (bounded); without it the stop is fire-and-forget so the
// UI stays responsive during rapid re-selection.
func (m *Manager) StopStreaming(wait bool) {
	if m.streamer != nil {
		m.streamer.Stop(wait)
	}
}

// RestartStreaming stops the current session without waiting and starts a
// new one for the same item with the current settings. Used when the log
// window settings change while viewing.
func (m *Manager) RestartStreaming() bool {
	if m.currentItem.IsZero() {
		log.Printf("cannot restart streaming: no current item")
		return false
	}

	m.showingLoading = true
	m.logsLoading = true

	m.StopStreaming(false)

	_, err := m.StartStreaming(m.currentItem, m.tail, m.since)
	return err == nil
}

// ProcessQueue drains at most maxItems messages, classifying each. Messages
// whose nonzero session ID does not match the current session are dropped
// as stale; session ID 0 marks untagged messages that are always processed.
func (m *Manager) ProcessQueue(maxItems int) Result {
	var result Result
	if m.streamer == nil {
		return result
	}

	for _, msg := range m.streamer.Queue().Drain(maxItems) {
		if msg.SessionID != 0 && msg.SessionID != m.currentSessionID {
			continue
		}

		result.Processed++

		switch msg.Kind {
		case domain.KindLog:
			result.Lines = append(result.Lines, msg.Payload)
			result.Matched++
		case domain.KindError:
			result.Errors = append(result.Errors, msg.Payload)
			log.Printf("log stream error: %s", msg.Payload)
		case domain.KindNoLogs:
			result.NoLogs = true
			m.showingNoLogs = true
		default:
			log.Printf("skipping unknown queue message kind %d", msg.Kind)
		}
	}

	if result.Processed > 0 {
		m.logsLoading = false
	}

	return result
}

// UpdateSettings replaces the tail and/or since settings used by future
// sessions. Empty values leave the corresponding setting unchanged.
func (m *Manager) UpdateSettings(tail, since string) {
	if tail != "" {
		m.tail = tail
	}
	if since != "" {
		m.since = since
	}
}

// Tail returns the current tail setting
func (m *Manager) Tail() string {
	return m.tail
}

// Since returns the current since setting
func (m *Manager) Since() string {
	return m.since
}

// MarkLoadingMessage records that the display is showing a loading message,
// so the processor clears it once real content arrives
func (m *Manager) MarkLoadingMessage() {
	m.showingLoading = true
}

// CurrentItem returns the item currently being streamed, or a zero ref
func (m *Manager) CurrentItem() domain.ItemRef {
	return m.currentItem
}

// CurrentSessionID returns the current session ID, 0 when idle
func (m *Manager) CurrentSessionID() int {
	return m.currentSessionID
}

// IsLoading reports whether the first logs of the session are still pending
func (m *Manager) IsLoading() bool {
	return m.logsLoading
}

// HasNoLogsMessage reports whether the "no logs" message is showing
func (m *Manager) HasNoLogsMessage() bool {
	return m.showingNoLogs
}

// Clear stops streaming synchronously and discards all session state
func (m *Manager) Clear() {
	m.StopStreaming(true)
	m.currentItem = domain.ItemRef{}
	m.showingNoLogs = false
	m.showingLoading = false
	m.showingNoMatches = false
	m.logsLoading = false
}
