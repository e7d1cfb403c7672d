package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// Summary aggregates one period of attendance.
type Summary struct {
	DaysCount        int
	RegularizedCount int
	VerifiedCount    int
	TotalHours       float64

	// Data quality counters taken from the tallies behind TotalHours.
	DroppedSessions  int
	NegativeSessions int
}

// TotalHoursLabel renders TotalHours as "{h}h {m}m".
func (s Summary) TotalHoursLabel() string {
	return FormatHours(s.TotalHours)
}

// Summarize computes period statistics over events that were already
// narrowed to the period. Worked hours are summed per visible day from the
// live events of that day, then approved regularizations are reconciled as
// one separate group and added on top. A regularized day that also has live
// sessions is counted twice.
func Summarize(events []attendance.Event, loc *time.Location) Summary {
	sorted := SortEvents(events)

	var s Summary
	for _, e := range sorted {
		if e.Action == attendance.ActionRegularization {
			s.RegularizedCount++
		}
		if e.IsApproved() {
			s.VerifiedCount++
		}
	}

	var quality Tally
	buckets := GroupByDay(VisibleOnly(sorted), loc)
	s.DaysCount = len(buckets)
	for _, b := range buckets {
		t := Accumulate(LiveOnly(b.Events))
		s.TotalHours += t.FractionalHours()
		quality = quality.Add(t)
	}

	reg := Accumulate(ApprovedRegularizations(sorted))
	s.TotalHours += reg.FractionalHours()
	quality = quality.Add(reg)

	s.DroppedSessions = quality.DroppedSessions
	s.NegativeSessions = quality.NegativeSessions
	return s
}

// TodayActivity returns today's live events in time order. "Today" is the
// local day of now in now's location; regularizations are excluded.
func TodayActivity(events []attendance.Event, now time.Time) []attendance.Event {
	today := DayKeyOf(now, now.Location())
	out := make([]attendance.Event, 0)
	for _, e := range SortEvents(events) {
		if !e.HasValidTimestamp() || !e.Action.IsLive() {
			continue
		}
		if DayKeyOf(e.Timestamp, now.Location()).sameDay(today) {
			out = append(out, e)
		}
	}
	return out
}
