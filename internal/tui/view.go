package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dialmaster/docktui/internal/docker"
)

// View renders the dashboard
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSidebar(),
		m.pane.viewport.View(),
	)
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	title := "docktui"
	if item := m.manager.CurrentItem(); !item.IsZero() {
		title = fmt.Sprintf("docktui - %s", item)
	}
	settings := fmt.Sprintf("tail=%s since=%s", m.manager.Tail(), m.manager.Since())
	return headerStyle.Width(m.width).Render(title + "  " + settings)
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	for i, item := range m.items {
		label := item.Label
		if item.Indent {
			label = "  " + label
		}
		label = runewidth.Truncate(label, sidebarWidth-2, "")

		style := m.itemStyle(item)
		if i == m.selected {
			style = selectedItemStyle
			label = "> " + strings.TrimPrefix(label, "  ")
		}
		b.WriteString(style.Render(label))
		b.WriteByte('\n')
	}
	if len(m.items) == 0 {
		b.WriteString(stoppedItemStyle.Render("no containers"))
	}
	return sidebarStyle.Height(m.logHeight()).Render(b.String())
}

func (m Model) itemStyle(item Item) lipgloss.Style {
	if !item.Indent && item.Status == "" {
		return stackItemStyle
	}
	if docker.IsRunningStatus(item.Status) {
		return runningItemStyle
	}
	return stoppedItemStyle
}

func (m Model) renderFooter() string {
	if m.filtering {
		return statusStyle.Width(m.width).Render(m.filterInput.View())
	}

	var parts []string
	if filter := m.engine.Filter(); filter != "" {
		label := fmt.Sprintf("filter: %s", filter)
		if !m.engine.Pattern().Valid() {
			label += " (invalid regex, showing all)"
		}
		parts = append(parts, label)
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render("error: "+m.err.Error()))
	}
	parts = append(parts, "j/k select · / filter · m mark · t tail · s since · q quit")

	return statusStyle.Width(m.width).Render(strings.Join(parts, "  |  "))
}
