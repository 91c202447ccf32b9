package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// logPane is the rendering surface for log content. It implements
// stream.Display over a bubbles viewport, accumulating either log lines or
// a full-pane system message (never both).
type logPane struct {
	viewport  viewport.Model
	lines     []string
	text      string
	selecting bool
	follow    bool
}

func newLogPane() *logPane {
	return &logPane{
		viewport: viewport.New(0, 0),
		follow:   true,
	}
}

// AppendLine renders one line immediately
func (p *logPane) AppendLine(line string) {
	p.text = ""
	p.lines = append(p.lines, line)
	p.refresh()
}

// AppendLines renders a batch of lines in one viewport update
func (p *logPane) AppendLines(lines []string) {
	if len(lines) == 0 {
		return
	}
	p.text = ""
	p.lines = append(p.lines, lines...)
	p.refresh()
}

// SetText replaces the whole pane with explanatory text
func (p *logPane) SetText(text string) {
	p.lines = nil
	p.text = text
	p.refresh()
}

// SetLines replaces the pane content with a recomputed filtered view
func (p *logPane) SetLines(lines []string) {
	p.text = ""
	p.lines = append([]string(nil), lines...)
	p.refresh()
}

// Clear empties the pane
func (p *logPane) Clear() {
	p.lines = nil
	p.text = ""
	p.refresh()
}

// IsSelecting reports whether the user is actively selecting text
func (p *logPane) IsSelecting() bool {
	return p.selecting
}

// HasContent reports whether anything is currently rendered
func (p *logPane) HasContent() bool {
	return len(p.lines) > 0 || strings.TrimSpace(p.text) != ""
}

func (p *logPane) setSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
	p.refresh()
}

func (p *logPane) refresh() {
	if p.text != "" {
		p.viewport.SetContent(p.text)
		p.viewport.GotoTop()
		return
	}
	p.viewport.SetContent(strings.Join(p.lines, "\n"))
	if p.follow {
		p.viewport.GotoBottom()
	}
}
