package dates

import "time"

// Layout is the date-only wire format used across the API.
const Layout = "2006-01-02"

// Parse reads a YYYY-MM-DD value as a UTC midnight instant.
func Parse(value string) (time.Time, error) {
	return time.Parse(Layout, value)
}

// Format renders a date-only value.
func Format(d time.Time) string {
	return d.Format(Layout)
}

// Nights counts whole calendar days between check-in and check-out.
// Negative spans clamp to 0; a valid booking always has at least 1.
func Nights(checkIn, checkOut time.Time) int {
	in := Truncate(checkIn)
	out := Truncate(checkOut)
	days := int(out.Sub(in).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Truncate drops the time-of-day component, keeping UTC date semantics.
func Truncate(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return Truncate(time.Now().UTC())
}

func AddDays(d time.Time, days int) time.Time {
	return Truncate(d).AddDate(0, 0, days)
}
