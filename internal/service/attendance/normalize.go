package attendance

import (
	"sort"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// SortEvents returns a copy of events ordered by timestamp, oldest first.
// Equal timestamps keep their input order. Events without a valid timestamp
// go last, also in input order.
func SortEvents(events []attendance.Event) []attendance.Event {
	sorted := make([]attendance.Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.HasValidTimestamp() {
			return false
		}
		if !b.HasValidTimestamp() {
			return true
		}
		return a.Timestamp.Before(b.Timestamp)
	})

	return sorted
}

// SplitValid separates events with a usable timestamp from those without.
func SplitValid(events []attendance.Event) (valid, invalid []attendance.Event) {
	valid = make([]attendance.Event, 0, len(events))
	for _, e := range events {
		if e.HasValidTimestamp() {
			valid = append(valid, e)
		} else {
			invalid = append(invalid, e)
		}
	}
	return valid, invalid
}

// LiveOnly keeps login, logout and break events.
func LiveOnly(events []attendance.Event) []attendance.Event {
	out := make([]attendance.Event, 0, len(events))
	for _, e := range events {
		if e.Action.IsLive() {
			out = append(out, e)
		}
	}
	return out
}

// VisibleOnly drops regularizations that are not approved.
func VisibleOnly(events []attendance.Event) []attendance.Event {
	out := make([]attendance.Event, 0, len(events))
	for _, e := range events {
		if e.IsVisible() {
			out = append(out, e)
		}
	}
	return out
}

// ApprovedRegularizations keeps regularizations whose status is Approved.
func ApprovedRegularizations(events []attendance.Event) []attendance.Event {
	var out []attendance.Event
	for _, e := range events {
		if e.Action == attendance.ActionRegularization && e.IsApproved() {
			out = append(out, e)
		}
	}
	return out
}
