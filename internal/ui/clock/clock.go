// Package clock renders the header clock.
package clock

import "time"

// View formats now as the header clock: time of day followed by the long
// date.
func View(now time.Time, clock24 bool) string {
	layout := "03:04:05 PM"
	if clock24 {
		layout = "15:04:05"
	}
	return now.Format(layout) + "  " + now.Format("Monday, January 2, 2006")
}
