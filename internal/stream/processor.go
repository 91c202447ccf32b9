package stream

import (
	"fmt"

	"github.com/dialmaster/docktui/internal/logs"
)

// Display is the rendering surface the processor writes to. The TUI's log
// pane implements it; tests substitute a fake.
type Display interface {
	// AppendLine renders one line immediately
	AppendLine(line string)
	// AppendLines renders a batch of lines in one update
	AppendLines(lines []string)
	// SetText replaces the whole pane with explanatory text
	SetText(text string)
	// Clear empties the pane
	Clear()
	// IsSelecting reports whether the user is actively selecting text
	IsSelecting() bool
	// HasContent reports whether anything is currently rendered
	HasContent() bool
}

// TickResult summarizes one processing tick
type TickResult struct {
	Processed    int
	Matched      int
	HasDisplayed bool
}

// Processor bridges the manager's drained batches to the filter engine and
// the display, and decides when the user sees system messages ("no logs
// found", "no matches") instead of log content.
type Processor struct {
	manager *Manager
	engine  *logs.Engine
	display Display
}

// NewProcessor wires a processor to its collaborators
func NewProcessor(manager *Manager, engine *logs.Engine, display Display) *Processor {
	return &Processor{
		manager: manager,
		engine:  engine,
		display: display,
	}
}

// shouldSkip guards the tick: nothing happens while streaming is
// unavailable or the user is mid-selection. Showing "no matches" does not
// skip, since new lines might start matching.
func (p *Processor) shouldSkip() bool {
	if !p.manager.Available() {
		return true
	}
	return p.display.IsSelecting()
}

// Tick drains up to maxItems queued messages and applies them to the
// engine and the display.
func (p *Processor) Tick(maxItems int) TickResult {
	if p.shouldSkip() {
		return TickResult{}
	}

	hasDisplayed := p.display.HasContent()
	result := p.manager.ProcessQueue(maxItems)

	batch, matched := p.applyLogLines(result.Lines)

	for _, e := range result.Errors {
		// Errors are transient operational noise, rendered inline but
		// never stored in the filterable buffer.
		p.display.AppendLine("ERROR: " + e)
	}

	if result.NoLogs {
		p.handleNoLogs()
	}

	if len(batch) > 0 {
		p.display.AppendLines(batch)
	}

	if result.Processed > 0 || !p.manager.showingNoMatches {
		p.handleNoMatches()
	}

	return TickResult{
		Processed:    result.Processed,
		Matched:      matched,
		HasDisplayed: hasDisplayed,
	}
}

// applyLogLines stores each drained line and collects the ones that pass
// the filter (with marker context) for a single batched render.
func (p *Processor) applyLogLines(lines []string) ([]string, int) {
	var batch []string
	matched := 0

	for _, line := range lines {
		p.engine.AddLine(line)

		if !p.engine.ShouldShowLineWithContext(line) {
			continue
		}
		matched++

		if p.manager.showingNoLogs || p.manager.showingLoading {
			p.display.Clear()
			p.manager.showingNoLogs = false
			p.manager.showingLoading = false
		}
		if p.manager.showingNoMatches {
			p.manager.showingNoMatches = false
			p.display.Clear()
		}

		batch = append(batch, line)
	}
	return batch, matched
}

// handleNoLogs replaces the pane with the canonical explanation. The buffer
// is cleared but the filter text survives, so logs that arrive later are
// filtered correctly.
func (p *Processor) handleNoLogs() {
	p.display.Clear()
	p.engine.Clear()
	p.display.SetText(p.noLogsMessage())
	p.manager.showingNoLogs = true
}

// handleNoMatches shows "No log lines match filter" when the filter hides
// everything. The no-logs message takes precedence and is never clobbered.
func (p *Processor) handleNoMatches() {
	if p.manager.showingNoLogs {
		return
	}
	if !p.engine.HasFilter() || p.engine.LineCount() == 0 {
		return
	}

	total := 0
	for _, line := range p.engine.AllLines() {
		if p.engine.ShouldShowLineWithContext(line) {
			total++
		}
	}

	if total == 0 {
		p.display.Clear()
		p.display.SetText("No log lines match filter")
		p.manager.showingNoMatches = true
	} else {
		p.manager.showingNoMatches = false
	}
}

func (p *Processor) noLogsMessage() string {
	item := p.manager.CurrentItem()
	return fmt.Sprintf(
		"No logs found for %s\n\n"+
			"This could mean:\n"+
			"  - The container/stack hasn't produced logs in the selected time range\n"+
			"  - The container/stack was recently started\n"+
			"  - Logs may have been cleared or rotated\n\n"+
			"Try adjusting the log settings to see more history.\n\n"+
			"Waiting for new logs...",
		item,
	)
}
