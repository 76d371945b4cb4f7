package classify

import (
	"fmt"
	"time"
)

// DisplayDateTime renders t in loc as a day/month/year date and a 12-hour
// clock time, e.g. "7/3/2026" and "8:05 PM". A zero time renders as two
// empty strings.
func DisplayDateTime(t time.Time, loc *time.Location) (string, string) {
	if t.IsZero() {
		return "", ""
	}
	if loc == nil {
		loc = time.Local
	}

	lt := t.In(loc)
	date := fmt.Sprintf("%d/%d/%d", lt.Day(), int(lt.Month()), lt.Year())
	return date, lt.Format("3:04 PM")
}

// ISODate returns the UTC calendar date of t as YYYY-MM-DD
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
