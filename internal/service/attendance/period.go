package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// DateRange is an inclusive span of whole local days. Start and End are
// local midnights.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewCustomRange builds a range from two dates, keeping only their
// year/month/day in loc. A zero bound stays zero.
func NewCustomRange(start, end time.Time, loc *time.Location) DateRange {
	return DateRange{Start: dateIn(start, loc), End: dateIn(end, loc)}
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Contains reports whether t falls on a day inside the range, both ends
// inclusive, judged in the range's location.
func (r DateRange) Contains(t time.Time) bool {
	day := truncateToDay(t.In(r.Start.Location()))
	return !day.Before(r.Start) && !day.After(r.End)
}

// ResolveRange turns a named range into concrete days relative to now, in
// now's location. The boolean is false when no filtering applies: allTime,
// an unknown name, or a custom range missing either bound.
func ResolveRange(name attendance.RangeName, now time.Time, custom *DateRange) (DateRange, bool) {
	today := truncateToDay(now)
	loc := now.Location()

	switch name {
	case attendance.RangeToday:
		return DateRange{Start: today, End: today}, true

	case attendance.RangeYesterday:
		y := today.AddDate(0, 0, -1)
		return DateRange{Start: y, End: y}, true

	case attendance.RangeThisWeek:
		return DateRange{Start: weekStart(today), End: today}, true

	case attendance.RangeLastWeek:
		ws := weekStart(today)
		return DateRange{Start: ws.AddDate(0, 0, -7), End: ws.AddDate(0, 0, -1)}, true

	case attendance.RangeThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Start: first, End: today}, true

	case attendance.RangeLastMonth:
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, loc)
		last := time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, loc)
		return DateRange{Start: first, End: last}, true

	case attendance.RangeCustom:
		if custom == nil || custom.Start.IsZero() || custom.End.IsZero() {
			return DateRange{}, false
		}
		return NewCustomRange(custom.Start, custom.End, loc), true
	}

	return DateRange{}, false
}

// weekStart returns the most recent Sunday on or before day.
func weekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// FilterByRange keeps events whose local day lies in the resolved range.
// Events are returned in input order; with no applicable range the input
// is returned as a copy.
func FilterByRange(events []attendance.Event, name attendance.RangeName, now time.Time, custom *DateRange) []attendance.Event {
	r, ok := ResolveRange(name, now, custom)
	out := make([]attendance.Event, 0, len(events))
	for _, e := range events {
		if !ok || r.Contains(e.Timestamp) {
			out = append(out, e)
		}
	}
	return out
}
