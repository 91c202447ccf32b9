package stream

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// tabWidth is the number of spaces a tab expands to
const tabWidth = 4

// ansiEscapePattern matches ANSI escape sequences (colors, cursor movement)
var ansiEscapePattern = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// StripANSI removes ANSI escape sequences from text
func StripANSI(text string) string {
	return ansiEscapePattern.ReplaceAllString(text, "")
}

// ScanLinesKeepCR is a bufio.SplitFunc like bufio.ScanLines that strips only
// the trailing newline. Embedded and trailing carriage returns are
// preserved: each \r-delimited segment represents a distinct terminal
// overwrite frame (progress bars) and must survive to be split later.
func ScanLinesKeepCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// CleanSegments converts one raw log line into the cleaned segments to
// forward. The line is split on carriage returns; each segment is
// tab-expanded and ANSI-stripped. A segment is forwarded if the stripped
// result is non-empty or the segment was already empty before stripping
// (a deliberate blank line). Segments that are non-empty but consist purely
// of ANSI sequences are suppressed.
func CleanSegments(line string) []string {
	line = strings.ToValidUTF8(line, "�")

	segments := strings.Split(line, "\r")
	cleaned := make([]string, 0, len(segments))

	for _, segment := range segments {
		segment = expandTabs(segment, tabWidth)

		emptyBeforeStrip := segment == ""
		stripped := StripANSI(segment)

		if stripped != "" || emptyBeforeStrip {
			cleaned = append(cleaned, stripped)
		}
	}
	return cleaned
}

// expandTabs replaces each tab with spaces up to the next column that is a
// multiple of width, counting columns from the start of the string.
func expandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			for i := 0; i < n; i++ {
				b.WriteByte(' ')
			}
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

var _ bufio.SplitFunc = ScanLinesKeepCR
