package attendance

import (
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// wib is a fixed +07:00 zone so tests do not depend on the tz database.
var wib = time.FixedZone("WIB", 7*60*60)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, wib)
}

var eventSeq int

func ev(action attendance.Action, ts time.Time) attendance.Event {
	eventSeq++
	return attendance.Event{
		ID:        fmt.Sprintf("evt-%d", eventSeq),
		UserID:    "user-1",
		CompanyID: "company-1",
		Timestamp: ts,
		Action:    action,
	}
}

func regularization(status attendance.ApprovalStatus, login, logout time.Time) attendance.Event {
	e := ev(attendance.ActionRegularization, time.Date(login.Year(), login.Month(), login.Day(), 0, 0, 0, 0, login.Location()))
	e.ApprovalStatus = &status
	e.LoginTime = &login
	e.LogoutTime = &logout
	return e
}

// workday is login 09:00, break 12:00-12:30, logout 17:00 on the given day.
func workday(year int, month time.Month, day int) []attendance.Event {
	return []attendance.Event{
		ev(attendance.ActionLogin, at(year, month, day, 9, 0)),
		ev(attendance.ActionBreakStarted, at(year, month, day, 12, 0)),
		ev(attendance.ActionBreakEnded, at(year, month, day, 12, 30)),
		ev(attendance.ActionLogout, at(year, month, day, 17, 0)),
	}
}

// steppingClock returns first on its first call and then on every later one.
type steppingClock struct {
	mu           sync.Mutex
	first, later time.Time
	calls        int
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls == 1 {
		return c.first
	}
	return c.later
}

func (c *steppingClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func ids(events []attendance.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

type fakeRecorder struct {
	mu       sync.Mutex
	ops      []string
	skipped  int
	dropped  int
	negative int
	stored   map[string]int
}

func (f *fakeRecorder) RecordReconcile(operation string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, operation)
}

func (f *fakeRecorder) RecordSkippedEvents(count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skipped += count
}

func (f *fakeRecorder) RecordDroppedSessions(count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropped += count
}

func (f *fakeRecorder) RecordNegativeSessions(count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.negative += count
}

func (f *fakeRecorder) RecordEventStored(action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		f.stored = make(map[string]int)
	}
	f.stored[action]++
}
