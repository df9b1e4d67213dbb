package report

import "time"

// payPeriodStart is the weekday every pay-period week begins on.
const payPeriodStart = time.Friday

// day truncates t to midnight of its calendar day in UTC.
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func lastOfMonth(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, 1, -1)
}

// Period returns the inclusive pay-period window for the anchor date: the Friday on
// or before it through the following Thursday, clamped to the anchor's month.
func Period(anchor time.Time) (start, end time.Time) {
	d := day(anchor)

	back := (int(d.Weekday()) - int(payPeriodStart) + 7) % 7
	start = d.AddDate(0, 0, -back)
	end = start.AddDate(0, 0, 6)

	if first := firstOfMonth(d); start.Before(first) {
		start = first
	}

	if last := lastOfMonth(d); end.After(last) {
		end = last
	}

	return start, end
}

func within(t, start, end time.Time) bool {
	d := day(t)
	return !d.Before(start) && !d.After(end)
}
