package services

import (
	"fmt"
	"math"
	"strings"
)

const (
	minuteSeconds = 60
	hourSeconds   = minuteSeconds * 60
	daySeconds    = hourSeconds * 24
	weekSeconds   = daySeconds * 7
	yearSeconds   = daySeconds * 365
)

var durationUnits = []struct {
	seconds float64
	label   string
}{
	{yearSeconds, "year(s)"},
	{weekSeconds, "weeks(s)"},
	{daySeconds, "day(s)"},
	{hourSeconds, "hour(s)"},
	{minuteSeconds, "minutes(s)"},
}

// FormatDuration breaks seconds down into years, weeks, days, hours,
// minutes and seconds, e.g. "1 hour(s), 1 minutes(s) and 1.00 second(s)".
// A unit is only emitted when the remainder is strictly greater than its
// length, so exactly 3600 renders as "60 minutes(s) and 0.00 second(s)".
func FormatDuration(seconds float64) string {
	var b strings.Builder
	remaining := seconds

	for _, u := range durationUnits {
		if remaining <= u.seconds {
			continue
		}
		fmt.Fprintf(&b, "%d %s", int64(math.Floor(remaining/u.seconds)), u.label)
		remaining = math.Mod(remaining, u.seconds)
		if u.seconds == minuteSeconds {
			b.WriteString(" and ")
		} else {
			b.WriteString(", ")
		}
	}

	fmt.Fprintf(&b, "%.2f second(s)", remaining)
	return b.String()
}
