package usage

import "time"

// MonthStart returns the first instant of the calendar month containing t,
// in t's location. Monthly counters include rows created at or after this
// instant.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
