package validation

import "time"

// DateLayout is the wire format for attendance dates.
const DateLayout = "2006-01-02"

// ParseDate parses a yyyy-mm-dd date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
// Weekend attendance is allowed but flagged as unusual.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsFutureDate reports whether the date is after today. Comparison is by
// calendar day, not instant, so marking later the same day stays valid.
func IsFutureDate(d time.Time, now time.Time) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 > y2
	}
	if m1 != m2 {
		return m1 > m2
	}
	return d1 > d2
}
