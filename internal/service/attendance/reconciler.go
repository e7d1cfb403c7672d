package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Query selects the period a reconciliation covers.
type Query struct {
	Range  attendance.RangeName
	Custom *DateRange
	// Now anchors relative ranges; zero means the reconciler's clock.
	Now time.Time
}

// DayHistory is one day of the history view.
type DayHistory struct {
	Day    DayKey
	Events []attendance.Event
	Tally  Tally
}

// Reconciler runs the reconciliation pipeline over event snapshots. It holds
// no per-call state, so one value can serve concurrent requests.
type Reconciler struct {
	loc      *time.Location
	clock    func() time.Time
	recorder metrics.Recorder
}

func NewReconciler(loc *time.Location, clock func() time.Time, recorder metrics.Recorder) *Reconciler {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Reconciler{loc: loc, clock: clock, recorder: recorder}
}

// Location is the zone that defines a local day.
func (r *Reconciler) Location() *time.Location {
	return r.loc
}

// Now is the current instant in the reconciler's location.
func (r *Reconciler) Now() time.Time {
	return r.clock().In(r.loc)
}

// prepare drops events with unusable timestamps and sorts the rest.
func (r *Reconciler) prepare(events []attendance.Event) []attendance.Event {
	valid, invalid := SplitValid(events)
	if len(invalid) > 0 {
		ids := make([]string, 0, len(invalid))
		for _, e := range invalid {
			ids = append(ids, e.ID)
		}
		slog.Warn("Skipping attendance events with malformed timestamp", "count", len(invalid), "event_ids", ids)
		r.recorder.RecordSkippedEvents(len(invalid))
	}
	return SortEvents(valid)
}

func (r *Reconciler) observe(operation string, start time.Time, t Tally) {
	r.recorder.RecordReconcile(operation, time.Since(start))
	if t.DroppedSessions > 0 {
		r.recorder.RecordDroppedSessions(t.DroppedSessions)
	}
	if t.NegativeSessions > 0 {
		r.recorder.RecordNegativeSessions(t.NegativeSessions)
		slog.Warn("Negative attendance session detected", "operation", operation, "count", t.NegativeSessions)
	}
}

func (r *Reconciler) anchor(q Query) time.Time {
	if q.Now.IsZero() {
		return r.Now()
	}
	return q.Now.In(r.loc)
}

func (r *Reconciler) filter(events []attendance.Event, q Query) []attendance.Event {
	return FilterByRange(events, q.Range, r.anchor(q), q.Custom)
}

// Resolve returns the concrete days q covers, if any.
func (r *Reconciler) Resolve(q Query) (DateRange, bool) {
	return ResolveRange(q.Range, r.anchor(q), q.Custom)
}

// History groups the period's events by day, oldest day first. Every event
// is listed, pending regularizations included; each day's tally uses the
// live events only.
func (r *Reconciler) History(events []attendance.Event, q Query) []DayHistory {
	start := time.Now()
	buckets := GroupByDay(r.filter(r.prepare(events), q), r.loc)

	var quality Tally
	days := make([]DayHistory, 0, len(buckets))
	for _, b := range buckets {
		t := Accumulate(LiveOnly(b.Events))
		quality = quality.Add(t)
		days = append(days, DayHistory{Day: b.Day, Events: b.Events, Tally: t})
	}

	r.observe("history", start, quality)
	return days
}

// Summary aggregates the period's events.
func (r *Reconciler) Summary(events []attendance.Event, q Query) Summary {
	start := time.Now()
	s := r.summarize(r.prepare(events), q)
	r.observe("summary", start, Tally{DroppedSessions: s.DroppedSessions, NegativeSessions: s.NegativeSessions})
	return s
}

func (r *Reconciler) summarize(prepared []attendance.Event, q Query) Summary {
	return Summarize(r.filter(prepared, q), r.loc)
}

// Today returns today's live activity and its running tally.
func (r *Reconciler) Today(events []attendance.Event) ([]attendance.Event, Tally) {
	return r.TodayAt(events, r.Now())
}

// TodayAt is Today for the local day containing now.
func (r *Reconciler) TodayAt(events []attendance.Event, now time.Time) ([]attendance.Event, Tally) {
	start := time.Now()
	today := TodayActivity(r.prepare(events), now.In(r.loc))
	t := Accumulate(today)
	r.observe("today", start, t)
	return today, t
}

// DayDuration reconciles the live events of a single local day.
func (r *Reconciler) DayDuration(events []attendance.Event, day time.Time) Tally {
	start := time.Now()
	key := DayKeyOf(dateIn(day, r.loc), r.loc)
	bucket, _ := FindDay(GroupByDay(r.prepare(events), r.loc), key)
	t := Accumulate(LiveOnly(bucket.Events))
	r.observe("day_duration", start, t)
	return t
}

// OverviewRanges are the periods shown on the attendance dashboard.
var OverviewRanges = []attendance.RangeName{
	attendance.RangeToday,
	attendance.RangeThisWeek,
	attendance.RangeThisMonth,
	attendance.RangeLastMonth,
	attendance.RangeAllTime,
}

// Overview summarizes every OverviewRanges period concurrently over the
// same snapshot.
func (r *Reconciler) Overview(ctx context.Context, events []attendance.Event) (map[attendance.RangeName]Summary, error) {
	return r.OverviewAt(ctx, events, r.Now())
}

// OverviewAt is Overview with every period anchored to the same instant.
func (r *Reconciler) OverviewAt(ctx context.Context, events []attendance.Event, now time.Time) (map[attendance.RangeName]Summary, error) {
	start := time.Now()
	prepared := r.prepare(events)
	results := make([]Summary, len(OverviewRanges))

	g, gCtx := errgroup.WithContext(ctx)
	for i, name := range OverviewRanges {
		i, name := i, name
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = r.summarize(prepared, Query{Range: name, Now: now})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[attendance.RangeName]Summary, len(OverviewRanges))
	var quality Tally
	for i, name := range OverviewRanges {
		out[name] = results[i]
		if name == attendance.RangeAllTime {
			quality = Tally{DroppedSessions: results[i].DroppedSessions, NegativeSessions: results[i].NegativeSessions}
		}
	}
	r.observe("overview", start, quality)
	return out, nil
}
