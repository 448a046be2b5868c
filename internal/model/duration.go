package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// durationPattern matches the ISO-8601-like durations the stats feed uses
// for playing time and game clocks, e.g. "PT12M34.56S" or "PT05M".
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// DurationError reports a duration string that does not follow the feed's
// PT<minutes>M<seconds>S format. Callers are expected to recover with a zero
// value; the parser never defaults silently.
type DurationError struct {
	Input string
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("malformed duration %q", e.Input)
}

// ParseDuration converts a feed duration string into whole seconds.
// Fractional seconds are rounded half-up so results stay deterministic.
func ParseDuration(s string) (int, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &DurationError{Input: s}
	}

	total := 0
	if m[1] != "" {
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, &DurationError{Input: s}
		}
		total += minutes * 60
	}
	if m[2] != "" {
		seconds, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, &DurationError{Input: s}
		}
		total += int(math.Floor(seconds + 0.5))
	}
	return total, nil
}

// FormatClock renders a second count as the mm:ss string used in reports.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
