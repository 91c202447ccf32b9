package stream

import (
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/dialmaster/docktui/internal/constants"
)

var sincePattern = regexp.MustCompile(`^(\d+)([mhd])$`)

// ParseSince converts a relative window like "5m", "2h" or "1d" into an
// absolute timestamp before now. An unparsable string falls back to 15
// minutes rather than failing.
func ParseSince(since string, now time.Time) time.Time {
	m := sincePattern.FindStringSubmatch(since)
	if m == nil {
		log.Printf("invalid since format %q, defaulting to 15m", since)
		return now.Add(-constants.DefaultSinceWindow)
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return now.Add(-constants.DefaultSinceWindow)
	}

	var unit time.Duration
	switch m[2] {
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	default:
		return now.Add(-constants.DefaultSinceWindow)
	}

	return now.Add(-time.Duration(value) * unit)
}
