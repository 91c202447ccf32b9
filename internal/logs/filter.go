package logs

import (
	"regexp"
	"strings"
)

// MarkerPrefix is the sentinel substring identifying user-inserted marker
// lines. Lines containing it are always shown regardless of the active
// filter.
const MarkerPrefix = "------ MARKED "

type patternKind int

const (
	patternNone patternKind = iota
	patternSubstring
	patternRegex
)

// Pattern is the active filter, decided once when the filter text is set:
// empty (pass-through), a case-insensitive substring, or a case-insensitive
// regular expression when the raw text is wrapped in /.../ delimiters.
//
// A regex that fails to compile is marked invalid and behaves as
// pass-through rather than surfacing an error: a malformed pattern is a
// normal transient state while the user is typing.
type Pattern struct {
	raw     string
	kind    patternKind
	lowered string
	re      *regexp.Regexp
	valid   bool
}

// NewPattern parses raw filter text into a Pattern. Whitespace is trimmed.
// Text of length >= 2 that starts and ends with '/' compiles its interior as
// a case-insensitive regex; anything else is a plain case-insensitive
// substring, pre-lowered once for repeated matching.
func NewPattern(raw string) Pattern {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Pattern{}
	}

	if len(raw) >= 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") {
		p := Pattern{raw: raw, kind: patternRegex}
		re, err := regexp.Compile("(?i)" + raw[1:len(raw)-1])
		if err == nil {
			p.re = re
			p.valid = true
		}
		return p
	}

	return Pattern{
		raw:     raw,
		kind:    patternSubstring,
		lowered: strings.ToLower(raw),
		valid:   true,
	}
}

// Raw returns the trimmed filter text the pattern was built from
func (p Pattern) Raw() string {
	return p.raw
}

// IsZero reports whether no filter text is set
func (p Pattern) IsZero() bool {
	return p.kind == patternNone
}

// IsRegex reports whether the pattern uses /.../ regex matching
func (p Pattern) IsRegex() bool {
	return p.kind == patternRegex
}

// Valid reports whether the pattern compiled successfully. An invalid
// pattern matches every line.
func (p Pattern) Valid() bool {
	return p.kind == patternNone || p.valid
}

// Matches reports whether the line satisfies the pattern. Empty and invalid
// patterns pass every line through.
func (p Pattern) Matches(line string) bool {
	switch p.kind {
	case patternSubstring:
		return strings.Contains(strings.ToLower(line), p.lowered)
	case patternRegex:
		if !p.valid {
			return true
		}
		return p.re.MatchString(line)
	default:
		return true
	}
}

// MatchPositions returns the [start, end) byte spans of every match in the
// line, for highlighting. Substring search advances by one byte per hit so
// overlapping occurrences are all reported.
func (p Pattern) MatchPositions(line string) [][2]int {
	switch p.kind {
	case patternSubstring:
		var spans [][2]int
		lowered := strings.ToLower(line)
		for from := 0; ; {
			i := strings.Index(lowered[from:], p.lowered)
			if i < 0 {
				break
			}
			start := from + i
			spans = append(spans, [2]int{start, start + len(p.lowered)})
			from = start + 1
		}
		return spans
	case patternRegex:
		if !p.valid {
			return nil
		}
		var spans [][2]int
		for _, m := range p.re.FindAllStringIndex(line, -1) {
			spans = append(spans, [2]int{m[0], m[1]})
		}
		return spans
	default:
		return nil
	}
}
