package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dialmaster/docktui/internal/config"
	"github.com/dialmaster/docktui/internal/constants"
	"github.com/dialmaster/docktui/internal/docker"
	"github.com/dialmaster/docktui/internal/logs"
	"github.com/dialmaster/docktui/internal/stream"
)

// tailChoices are the tail settings the 't' key cycles through
var tailChoices = []string{"50", "200", "1000"}

// sinceChoices are the time windows the 's' key cycles through
var sinceChoices = []string{"5m", "15m", "1h", "1d"}

// Model is the bubbletea model for the dashboard
type Model struct {
	cfg     *config.Config
	runtime docker.Runtime

	engine    *logs.Engine
	manager   *stream.Manager
	processor *stream.Processor
	pane      *logPane

	items    []Item
	selected int

	filterInput   textinput.Model
	filtering     bool
	pendingFilter string
	filterSeq     int

	width  int
	height int
	err    error
}

// NewModel creates a new dashboard model
func NewModel(cfg *config.Config, runtime docker.Runtime) Model {
	engine := logs.NewEngine(cfg.Log.MaxLines)
	streamer := stream.NewStreamer(runtime)
	manager := stream.NewManager(streamer, strconv.Itoa(cfg.Log.Tail), cfg.Log.Since)
	pane := newLogPane()

	input := textinput.New()
	input.Placeholder = "filter (wrap in /.../ for regex)"
	input.Prompt = "/ "
	input.CharLimit = 256

	return Model{
		cfg:         cfg,
		runtime:     runtime,
		engine:      engine,
		manager:     manager,
		processor:   stream.NewProcessor(manager, engine, pane),
		pane:        pane,
		filterInput: input,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchInventory(m.runtime),
		tickCmd(),
		refreshCmd(m.cfg.RefreshInterval()),
	)
}

// tickMsg drives the queue drain on a fixed short interval
type tickMsg time.Time

// refreshMsg triggers an inventory refresh
type refreshMsg time.Time

// inventoryMsg delivers a refreshed item list
type inventoryMsg []Item

// inventoryErrMsg delivers an inventory fetch failure
type inventoryErrMsg struct{ err error }

// applyFilterMsg fires after the filter debounce delay; Seq guards against
// stale timers when the user keeps typing
type applyFilterMsg struct{ Seq int }

func tickCmd() tea.Cmd {
	return tea.Tick(constants.QueueDrainInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func refreshCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func applyFilterCmd(seq int) tea.Cmd {
	return tea.Tick(constants.FilterDebounce, func(time.Time) tea.Msg {
		return applyFilterMsg{Seq: seq}
	})
}
