package logs

import (
	"strings"
	"time"
)

// markerContextLines is how many lines before and after a marker are always
// included in filtered output.
const markerContextLines = 2

// Engine stores recent log text in a bounded buffer and answers filtering
// questions about it, including the marker-context rules. It performs no I/O
// and expects to be touched by a single goroutine (the consumer tick).
type Engine struct {
	buf           *RingBuffer
	pattern       Pattern
	filteredCount int

	// pendingMarkerContext counts lines after a marker that are still
	// forced visible during incremental streaming.
	pendingMarkerContext int
}

// NewEngine creates an engine whose buffer holds at most maxLines lines
func NewEngine(maxLines int) *Engine {
	return &Engine{buf: NewRingBuffer(maxLines)}
}

// AddLine appends a line to the buffer, evicting the oldest when full
func (e *Engine) AddLine(line string) {
	e.buf.Push(line)
}

// AddLines appends multiple lines to the buffer
func (e *Engine) AddLines(lines []string) {
	for _, line := range lines {
		e.buf.Push(line)
	}
}

// SetFilter replaces the active filter with one parsed from raw text
func (e *Engine) SetFilter(raw string) {
	e.pattern = NewPattern(raw)
}

// Filter returns the trimmed text of the active filter
func (e *Engine) Filter() string {
	return e.pattern.Raw()
}

// HasFilter reports whether any filter text is set
func (e *Engine) HasFilter() bool {
	return !e.pattern.IsZero()
}

// Pattern returns the active filter pattern
func (e *Engine) Pattern() Pattern {
	return e.pattern
}

// MatchesFilter reports whether a line passes the active filter. Marker
// lines always pass, as do all lines when no filter is set or the filter is
// an invalid regex.
func (e *Engine) MatchesFilter(line string) bool {
	if e.pattern.IsZero() {
		return true
	}
	if strings.Contains(line, MarkerPrefix) {
		return true
	}
	return e.pattern.Matches(line)
}

// FilteredLines recomputes the full filtered view of the buffer, used when
// the filter changes or the view is reloaded.
//
// Inclusion is tracked by buffer index, not line text, so duplicate text at
// different positions cannot confuse the marker-context insertion. First
// pass: include markers, filter matches, and lines within two positions
// after a previously seen marker. Second pass: include up to two lines
// immediately before each marker, which a forward scan cannot discover.
func (e *Engine) FilteredLines() []string {
	e.filteredCount = 0
	n := e.buf.Len()

	if !e.HasFilter() {
		e.filteredCount = n
		return e.buf.All()
	}

	include := make([]bool, n)
	var markers []int

	for i := 0; i < n; i++ {
		line := e.buf.At(i)
		isMarker := strings.Contains(line, MarkerPrefix)
		if isMarker {
			markers = append(markers, i)
		}

		switch {
		case isMarker:
			include[i] = true
		case e.pattern.Matches(line):
			include[i] = true
		default:
			for _, m := range markers {
				if i-m <= markerContextLines {
					include[i] = true
					break
				}
			}
		}
	}

	for _, m := range markers {
		for off := 1; off <= markerContextLines; off++ {
			if idx := m - off; idx >= 0 {
				include[idx] = true
			}
		}
	}

	result := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if include[i] {
			result = append(result, e.buf.At(i))
			e.filteredCount++
		}
	}
	return result
}

// ShouldShowLineWithContext is the streaming variant of MatchesFilter for a
// single incoming line that has already been added to the buffer. Seeing a
// marker forces the next two lines visible; otherwise the last three
// buffered lines are checked for a nearby marker before falling back to the
// plain filter test.
func (e *Engine) ShouldShowLineWithContext(line string) bool {
	if strings.Contains(line, MarkerPrefix) {
		e.pendingMarkerContext = markerContextLines
		return true
	}

	if e.pendingMarkerContext > 0 {
		e.pendingMarkerContext--
		return true
	}

	n := e.buf.Len()
	start := n - 3
	if start < 0 {
		start = 0
	}
	for i := start; i < n; i++ {
		if strings.Contains(e.buf.At(i), MarkerPrefix) {
			return true
		}
	}

	return e.MatchesFilter(line)
}

// FindMatchPositions returns all match spans in the line for highlighting
func (e *Engine) FindMatchPositions(line string) [][2]int {
	return e.pattern.MatchPositions(line)
}

// AddMarker appends a timestamped marker block to the buffer and returns the
// lines that were added. The surrounding blank lines give the marker visual
// spacing and travel with it through filtering as context.
func (e *Engine) AddMarker(now time.Time) []string {
	marker := MarkerPrefix + now.Format("2006-01-02 15:04:05") + " ------"
	lines := []string{"", "", marker, "", ""}
	e.AddLines(lines)
	return lines
}

// LineCount returns the total number of buffered lines
func (e *Engine) LineCount() int {
	return e.buf.Len()
}

// FilteredLineCount returns the number of lines included by the most recent
// FilteredLines computation
func (e *Engine) FilteredLineCount() int {
	return e.filteredCount
}

// AllLines returns every buffered line in order
func (e *Engine) AllLines() []string {
	return e.buf.All()
}

// Clear empties the buffer and resets streaming state. The filter text is
// deliberately preserved so it survives a selection-driven clear; callers
// that want a hard reset must call SetFilter("") explicitly.
func (e *Engine) Clear() {
	e.buf.Clear()
	e.filteredCount = 0
	e.pendingMarkerContext = 0
}
