package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// DayKey identifies a calendar day in a specific location.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
	loc   *time.Location
}

// DayKeyOf returns the local calendar day of t in loc.
func DayKeyOf(t time.Time, loc *time.Location) DayKey {
	y, m, d := t.In(loc).Date()
	return DayKey{Year: y, Month: m, Day: d, loc: loc}
}

// Start is local midnight of the day.
func (k DayKey) Start() time.Time {
	loc := k.loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// String returns the key in "2006-01-02" form.
func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// Label is the display form used by the history view.
func (k DayKey) Label() string {
	return k.Start().Format("Mon, 02 Jan 2006")
}

func (k DayKey) sameDay(o DayKey) bool {
	return k.Year == o.Year && k.Month == o.Month && k.Day == o.Day
}

// DayBucket holds the events that fall on one local day.
type DayBucket struct {
	Day    DayKey
	Events []attendance.Event
}

// GroupByDay buckets events by their local calendar day in loc. Buckets are
// ordered by first appearance and events keep their input order, so sorted
// input gives chronological output.
func GroupByDay(events []attendance.Event, loc *time.Location) []DayBucket {
	var buckets []DayBucket
	index := make(map[string]int)

	for _, e := range events {
		key := DayKeyOf(e.Timestamp, loc)
		i, ok := index[key.String()]
		if !ok {
			i = len(buckets)
			index[key.String()] = i
			buckets = append(buckets, DayBucket{Day: key})
		}
		buckets[i].Events = append(buckets[i].Events, e)
	}

	return buckets
}

// Flatten concatenates bucket events back into one slice.
func Flatten(buckets []DayBucket) []attendance.Event {
	var out []attendance.Event
	for _, b := range buckets {
		out = append(out, b.Events...)
	}
	return out
}

// FindDay returns the bucket for key, if present.
func FindDay(buckets []DayBucket, key DayKey) (DayBucket, bool) {
	for _, b := range buckets {
		if b.Day.sameDay(key) {
			return b, true
		}
	}
	return DayBucket{}, false
}
