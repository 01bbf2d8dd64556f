package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SecondsToDuration converts a float offset in seconds to a duration.
// Negative and NaN offsets become zero.
func SecondsToDuration(seconds float64) time.Duration {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	if seconds >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatTimestamp renders an offset as M:SS, or H:MM:SS from one hour on.
// Offsets are floored to whole seconds, so ordered input yields ordered output.
func FormatTimestamp(seconds float64) string {
	return FormatDuration(SecondsToDuration(seconds))
}

// FormatDuration renders d as M:SS or H:MM:SS.
func FormatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int64(d / time.Hour)
	m := int64(d/time.Minute) % 60
	s := int64(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseTimestamp is the inverse of FormatDuration and is used for
// duration aware comparison of display timestamps.
func ParseTimestamp(ts string) (time.Duration, error) {
	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	var total time.Duration
	units := []time.Duration{time.Second, time.Minute, time.Hour}
	for i := range parts {
		part := parts[len(parts)-1-i]
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
		if i < len(parts)-1 && n > 59 {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
		total += time.Duration(n) * units[i]
	}
	return total, nil
}

// SubtitleTimestamp renders an offset as HH:MM:SS<sep>mmm for SRT (",") and WebVTT (".").
func SubtitleTimestamp(seconds float64, sep string) string {
	d := SecondsToDuration(seconds).Round(time.Millisecond)
	h := int64(d / time.Hour)
	m := int64(d/time.Minute) % 60
	s := int64(d/time.Second) % 60
	ms := int64(d/time.Millisecond) % 1000
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, ms)
}
