package booking

import "time"

// DateLayout is the wire format for reservation dates, matching the
// upstream API and the HTML date input that feeds it.
const DateLayout = "2006-01-02"

// IsValidDate reports whether candidate falls inside the rolling booking
// window [today, today+windowDays], inclusive on both ends. Comparison
// is at calendar-day granularity: both values are truncated to their
// date before comparing, so the time of day can never produce an
// off-by-one at either bound.
func IsValidDate(candidate, today time.Time, windowDays int) bool {
    c := truncateToDay(candidate)
    lo := truncateToDay(today)
    hi := lo.AddDate(0, 0, windowDays)
    return !c.Before(lo) && !c.After(hi)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
    return time.Parse(DateLayout, s)
}

func truncateToDay(t time.Time) time.Time {
    y, m, d := t.Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
