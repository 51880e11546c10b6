package service

import (
	"fmt"
	"time"
)

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatWeekLabel renders "Mar 3-9, 2025", or "Mar 30 - Apr 5, 2025" when the
// range crosses a month. The year is taken from start.
func FormatWeekLabel(start, end time.Time) string {
	startMonth := shortMonths[start.Month()-1]
	endMonth := shortMonths[end.Month()-1]
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d-%d, %d", startMonth, start.Day(), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s %d - %s %d, %d", startMonth, start.Day(), endMonth, end.Day(), start.Year())
}

const dateLayout = "2006-01-02"

// parseWeekDate accepts a plain date or an RFC 3339 timestamp and returns the
// calendar date as written, at UTC midnight.
func parseWeekDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, validationErr("invalid %s %q", field, raw)
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
