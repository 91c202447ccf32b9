package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dialmaster/docktui/internal/constants"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pane.setSize(m.logWidth(), m.logHeight())

	case tickMsg:
		m.processor.Tick(constants.MaxQueueItemsPerTick)
		cmds = append(cmds, tickCmd())

	case refreshMsg:
		cmds = append(cmds, fetchInventory(m.runtime), refreshCmd(m.cfg.RefreshInterval()))

	case inventoryMsg:
		m.applyInventory([]Item(msg))
		if m.manager.CurrentItem().IsZero() && len(m.items) > 0 {
			m.selectItem(m.selected)
		}

	case inventoryErrMsg:
		m.err = msg.err

	case applyFilterMsg:
		if msg.Seq == m.filterSeq {
			m.applyFilter()
		}
	}

	m.pane.viewport, cmd = m.pane.viewport.Update(msg)
	cmds = append(cmds, cmd)

	if m.filtering {
		before := m.filterInput.Value()
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)
		if value := m.filterInput.Value(); value != before {
			m.filterSeq++
			m.pendingFilter = value
			cmds = append(cmds, applyFilterCmd(m.filterSeq))
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		}
		var cmds []tea.Cmd
		var cmd tea.Cmd
		before := m.filterInput.Value()
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)
		if value := m.filterInput.Value(); value != before {
			m.filterSeq++
			m.pendingFilter = value
			cmds = append(cmds, applyFilterCmd(m.filterSeq))
		}
		return m, tea.Batch(cmds...)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.manager.Clear()
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.selectItem(m.selected)
		}
		return m, nil

	case "down", "j":
		if m.selected < len(m.items)-1 {
			m.selected++
			m.selectItem(m.selected)
		}
		return m, nil

	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, nil

	case "m":
		lines := m.engine.AddMarker(time.Now())
		m.pane.AppendLines(lines)
		return m, nil

	case "t":
		m.manager.UpdateSettings(nextChoice(tailChoices, m.manager.Tail()), "")
		m.restartWithSettings()
		return m, nil

	case "s":
		m.manager.UpdateSettings("", nextChoice(sinceChoices, m.manager.Since()))
		m.restartWithSettings()
		return m, nil

	case "r":
		return m, fetchInventory(m.runtime)
	}

	// Anything else scrolls the log pane (pgup/pgdn, home/end).
	var cmd tea.Cmd
	m.pane.viewport, cmd = m.pane.viewport.Update(msg)
	return m, cmd
}

// applyInventory replaces the item list, keeping the current selection
// pointed at the same item when it still exists.
func (m *Model) applyInventory(items []Item) {
	current := m.manager.CurrentItem()
	m.items = items

	if m.selected >= len(items) {
		m.selected = len(items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	if !current.IsZero() {
		for i, item := range items {
			if item.Ref == current {
				m.selected = i
				break
			}
		}
	}
}

// selectItem starts streaming the item at index i, superseding the current
// session. The stop does not wait: the new session's ID makes any stale
// in-flight output harmless.
func (m *Model) selectItem(i int) {
	if i < 0 || i >= len(m.items) {
		return
	}
	item := m.items[i]
	if item.Ref == m.manager.CurrentItem() {
		return
	}

	m.manager.StopStreaming(false)
	m.engine.Clear()
	m.pane.Clear()
	m.pane.SetText("Loading logs...")
	m.manager.MarkLoadingMessage()

	if _, err := m.manager.StartStreaming(item.Ref, "", ""); err != nil {
		m.err = err
	}
}

// restartWithSettings restarts the current stream after a tail/since change
func (m *Model) restartWithSettings() {
	if m.manager.CurrentItem().IsZero() {
		return
	}
	m.engine.Clear()
	m.pane.Clear()
	m.pane.SetText("Loading logs...")
	m.manager.RestartStreaming()
}

// applyFilter applies the debounced filter text and recomputes the view.
// While the "no logs found" explanation is showing there is nothing to
// refilter; the new filter is recorded but the message stays on screen.
func (m *Model) applyFilter() {
	m.engine.SetFilter(m.pendingFilter)
	if m.manager.HasNoLogsMessage() {
		return
	}
	m.pane.SetLines(m.engine.FilteredLines())
}

// nextChoice returns the element after current, wrapping around. Unknown
// values restart the cycle.
func nextChoice(choices []string, current string) string {
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

func (m Model) logWidth() int {
	w := m.width - sidebarWidth - 3
	if w < 0 {
		w = 0
	}
	return w
}

func (m Model) logHeight() int {
	h := m.height - 4
	if h < 0 {
		h = 0
	}
	return h
}
