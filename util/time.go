package util

import (
	"fmt"
	"time"

	"github.com/icza/gox/timex"
)

// Ago says how long ago the unix timestamp ts was, in the largest sensible unit.
func Ago(ts int64) string {

	if ts == 0 {
		return ""
	}

	year, month, day, hour, min, _ := timex.Diff(time.Unix(ts, 0), time.Now())

	switch {
	case year > 0:
		return plural(year, "year")
	case month > 0:
		return plural(month, "month")
	case day > 0:
		return plural(day, "day")
	case hour > 0:
		return plural(hour, "hour")
	case min > 0:
		return plural(min, "minute")
	default:
		return "just now"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
