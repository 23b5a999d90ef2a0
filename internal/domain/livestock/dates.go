package livestock

import (
	"time"
)

// DateLayout is the wire format of date-only values
const DateLayout = "2006-01-02"

// EpochFloor is the start of every report range that does not name one
var EpochFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateOf truncates t to midnight UTC of its calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a date-only value. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewInvalidRequestError("Invalid date: " + s + " (expected " + DateLayout + ")")
	}
	return t, nil
}

// DateRange is an inclusive range of calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange fills missing bounds with EpochFloor and today, and rejects
// ranges whose start is after their end.
func NewDateRange(start, end, today time.Time) (DateRange, error) {
	if start.IsZero() {
		start = EpochFloor
	}
	if end.IsZero() {
		end = today
	}
	r := DateRange{Start: DateOf(start), End: DateOf(end)}
	if r.Start.After(r.End) {
		return DateRange{}, NewInvalidRequestError("startDate must not be after endDate")
	}
	return r, nil
}

// Contains reports whether the day of t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(r.Start) && !d.After(r.End)
}
