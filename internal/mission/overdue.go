package mission

import (
	"fmt"
	"time"
)

// FormatOverdue describes how long ago target passed: whole days once a
// full day has elapsed, otherwise whole hours ("0 hours" included). A
// target in the future reads as "0 hours".
func FormatOverdue(target, now time.Time) string {
	diff := now.Sub(target)
	if diff < 0 {
		diff = 0
	}

	days := int(diff / (24 * time.Hour))
	if days > 0 {
		return plural(days, "day")
	}
	return plural(int(diff/time.Hour), "hour")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
