package format

import (
	"strings"
	"time"
)

// OrdinalSuffix returns the English ordinal suffix for a day of the month.
func OrdinalSuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	default:
		return "th"
	}
}

// BriefDate renders t as "Jan 10th <sep> 5:00 PM", e.g. with sep "after".
func BriefDate(t time.Time, sep string) string {
	day := t.Format("Jan 2") + OrdinalSuffix(t.Day())
	parts := []string{day}
	if sep = strings.TrimSpace(sep); sep != "" {
		parts = append(parts, sep)
	}
	parts = append(parts, t.Format("3:04 PM"))
	return strings.Join(parts, " ")
}

// ShortInterval renders a date range as "Aug 4 – 12", repeating the month
// only when the end falls in a different month or year.
func ShortInterval(start, end time.Time) string {
	from := start.Format("Jan 2")
	to := end.Format("Jan 2")
	if sameMonthAndYear(start, end) {
		to = end.Format("2")
	}
	return from + " – " + to
}

// WithTime returns t on the same calendar day in its own location with the
// clock set to hour:minute:00.
func WithTime(t time.Time, hour, minute int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}

func sameMonthAndYear(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}
