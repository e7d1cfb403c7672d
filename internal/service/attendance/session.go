package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

const (
	msPerHour   = int64(time.Hour / time.Millisecond)
	msPerMinute = int64(time.Minute / time.Millisecond)
)

// Tally is the net worked time of a set of events.
type Tally struct {
	Net time.Duration

	// Sessions counts closed sessions, including regularizations.
	Sessions int
	// DroppedSessions counts logins that never closed and earned no credit.
	DroppedSessions int
	// NegativeSessions counts sessions whose net time came out below zero.
	NegativeSessions int
}

// Add merges another tally into t.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Net:              t.Net + o.Net,
		Sessions:         t.Sessions + o.Sessions,
		DroppedSessions:  t.DroppedSessions + o.DroppedSessions,
		NegativeSessions: t.NegativeSessions + o.NegativeSessions,
	}
}

// Hours is floor(ms / 1h).
func (t Tally) Hours() int64 {
	return int64(math.Floor(float64(t.Net.Milliseconds()) / float64(msPerHour)))
}

// Minutes is floor((ms mod 1h) / 1m); the remainder keeps the sign of ms.
func (t Tally) Minutes() int64 {
	rem := t.Net.Milliseconds() % msPerHour
	return int64(math.Floor(float64(rem) / float64(msPerMinute)))
}

// Label renders the tally as "{h}h {m}m".
func (t Tally) Label() string {
	return fmt.Sprintf("%dh %dm", t.Hours(), t.Minutes())
}

// FractionalHours is hours + minutes/60, the figure summed across days.
func (t Tally) FractionalHours() float64 {
	return float64(t.Hours()) + float64(t.Minutes())/60
}

// FormatHours renders fractional hours as "{h}h {m}m".
func FormatHours(hours float64) string {
	return Tally{Net: time.Duration(math.Round(hours * float64(time.Hour/time.Minute))) * time.Minute}.Label()
}

type sessionState struct {
	openLogin  *time.Time
	openBreak  *time.Time
	breakTotal time.Duration
	tally      Tally
}

func (s *sessionState) closeSession(end time.Time) {
	net := end.Sub(*s.openLogin) - s.breakTotal
	s.tally.Net += net
	s.tally.Sessions++
	if net < 0 {
		s.tally.NegativeSessions++
	}
	s.openLogin = nil
	s.openBreak = nil
	s.breakTotal = 0
}

func (s *sessionState) apply(e attendance.Event) {
	if e.Action.IsLive() && !e.HasValidTimestamp() {
		return
	}
	ts := e.Timestamp

	switch e.Action {
	case attendance.ActionLogin:
		// A dangling session from an earlier login is forfeited.
		if s.openLogin != nil {
			s.tally.DroppedSessions++
		}
		s.openLogin = &ts
		s.openBreak = nil
		s.breakTotal = 0

	case attendance.ActionBreakStarted:
		s.openBreak = &ts

	case attendance.ActionBreakEnded:
		if s.openBreak != nil {
			s.breakTotal += ts.Sub(*s.openBreak)
			s.openBreak = nil
		}

	case attendance.ActionLogout:
		if s.openLogin == nil {
			return
		}
		if s.openBreak != nil {
			s.breakTotal += ts.Sub(*s.openBreak)
			s.openBreak = nil
		}
		s.closeSession(ts)

	case attendance.ActionRegularization:
		if e.LoginTime == nil || e.LogoutTime == nil {
			return
		}
		net := e.LogoutTime.Sub(*e.LoginTime)
		s.tally.Net += net
		s.tally.Sessions++
		if net < 0 {
			s.tally.NegativeSessions++
		}
	}
}

func (s *sessionState) finish() Tally {
	if s.openLogin != nil {
		if s.openBreak != nil {
			// Still on break: credit up to the moment the break began.
			s.closeSession(*s.openBreak)
		} else {
			s.tally.DroppedSessions++
		}
	}
	return s.tally
}

// Accumulate computes the net worked time of events already sorted by
// timestamp. It never fails: unmatched events are ignored and a session
// without a logout earns nothing unless it ended on an open break.
func Accumulate(events []attendance.Event) Tally {
	var state sessionState
	for _, e := range events {
		state.apply(e)
	}
	return state.finish()
}

// DurationLabel drops malformed events, sorts the rest and renders the net
// worked time of the live ones. Regularizations do not count toward it.
func DurationLabel(events []attendance.Event) string {
	valid, _ := SplitValid(events)
	return Accumulate(LiveOnly(SortEvents(valid))).Label()
}
