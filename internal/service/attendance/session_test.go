package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestAccumulate(t *testing.T) {
	tests := []struct {
		name         string
		events       []attendance.Event
		wantLabel    string
		wantSessions int
		wantDropped  int
		wantNegative int
	}{
		{
			name:         "empty input",
			events:       nil,
			wantLabel:    "0h 0m",
			wantSessions: 0,
		},
		{
			name: "simple session",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 17, 0)),
			},
			wantLabel:    "8h 0m",
			wantSessions: 1,
		},
		{
			name:         "session with one break",
			events:       workday(2024, 1, 15),
			wantLabel:    "7h 30m",
			wantSessions: 1,
		},
		{
			name: "unterminated break credits up to break start",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionBreakStarted, at(2024, 1, 15, 16, 0)),
			},
			wantLabel:    "7h 0m",
			wantSessions: 1,
		},
		{
			name: "login without logout is dropped",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
			},
			wantLabel:   "0h 0m",
			wantDropped: 1,
		},
		{
			name: "sequential sessions do not bleed",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionBreakStarted, at(2024, 1, 15, 10, 0)),
				ev(attendance.ActionBreakEnded, at(2024, 1, 15, 10, 15)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 12, 0)),
				ev(attendance.ActionLogin, at(2024, 1, 15, 13, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 17, 0)),
			},
			wantLabel:    "6h 45m",
			wantSessions: 2,
		},
		{
			name: "two plain sessions",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 12, 0)),
				ev(attendance.ActionLogin, at(2024, 1, 15, 13, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 17, 0)),
			},
			wantLabel:    "7h 0m",
			wantSessions: 2,
		},
		{
			name: "break still open at logout ends at logout",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionBreakStarted, at(2024, 1, 15, 16, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 17, 0)),
			},
			wantLabel:    "7h 0m",
			wantSessions: 1,
		},
		{
			name: "fresh login forfeits the open session",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 8, 0)),
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 10, 0)),
			},
			wantLabel:    "1h 0m",
			wantSessions: 1,
			wantDropped:  1,
		},
		{
			name: "events without a login are ignored",
			events: []attendance.Event{
				ev(attendance.ActionBreakStarted, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionBreakEnded, at(2024, 1, 15, 9, 30)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 10, 0)),
			},
			wantLabel: "0h 0m",
		},
		{
			name: "break taken before login does not count",
			events: []attendance.Event{
				ev(attendance.ActionBreakStarted, at(2024, 1, 15, 8, 0)),
				ev(attendance.ActionBreakEnded, at(2024, 1, 15, 8, 30)),
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 10, 0)),
			},
			wantLabel:    "1h 0m",
			wantSessions: 1,
		},
		{
			name: "regularization is its own session",
			events: []attendance.Event{
				regularization(attendance.ApprovalApproved, at(2024, 1, 10, 8, 0), at(2024, 1, 10, 16, 45)),
			},
			wantLabel:    "8h 45m",
			wantSessions: 1,
		},
		{
			name: "regularization without claimed times contributes nothing",
			events: []attendance.Event{
				ev(attendance.ActionRegularization, at(2024, 1, 10, 0, 0)),
			},
			wantLabel: "0h 0m",
		},
		{
			name: "regularization does not disturb an open session",
			events: []attendance.Event{
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				regularization(attendance.ApprovalApproved, at(2024, 1, 15, 1, 0), at(2024, 1, 15, 2, 0)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 10, 0)),
			},
			wantLabel:    "2h 0m",
			wantSessions: 2,
		},
		{
			name: "break longer than the session goes negative",
			events: []attendance.Event{
				ev(attendance.ActionBreakStarted, at(2024, 1, 15, 8, 0)),
				ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
				ev(attendance.ActionBreakStarted, at(2024, 1, 15, 9, 10)),
				ev(attendance.ActionBreakEnded, at(2024, 1, 15, 9, 50)),
				ev(attendance.ActionLogout, at(2024, 1, 15, 9, 20)),
			},
			// Logout at 09:20 arrives after a break that ended at 09:50.
			wantLabel:    "-1h -20m",
			wantSessions: 1,
			wantNegative: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accumulate(tt.events)
			assert.Equal(t, tt.wantLabel, got.Label())
			assert.Equal(t, tt.wantSessions, got.Sessions)
			assert.Equal(t, tt.wantDropped, got.DroppedSessions)
			assert.Equal(t, tt.wantNegative, got.NegativeSessions)
		})
	}
}

func TestAccumulate_NegativeRegularizationIsPreserved(t *testing.T) {
	got := Accumulate([]attendance.Event{
		regularization(attendance.ApprovalApproved, at(2024, 1, 10, 17, 0), at(2024, 1, 10, 16, 30)),
	})

	assert.Equal(t, -30*time.Minute, got.Net)
	assert.Equal(t, 1, got.NegativeSessions)
	assert.Equal(t, "-1h -30m", got.Label())
}

func TestAccumulate_SkipsLiveEventsWithoutTimestamp(t *testing.T) {
	broken := ev(attendance.ActionLogout, time.Time{})
	got := Accumulate([]attendance.Event{
		ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
		broken,
		ev(attendance.ActionLogout, at(2024, 1, 15, 11, 0)),
	})

	assert.Equal(t, "2h 0m", got.Label())
}

func TestTally_HoursAndMinutes(t *testing.T) {
	tests := []struct {
		net         time.Duration
		wantHours   int64
		wantMinutes int64
		wantLabel   string
		wantFloat   float64
	}{
		{0, 0, 0, "0h 0m", 0},
		{59*time.Second + 999*time.Millisecond, 0, 0, "0h 0m", 0},
		{90 * time.Minute, 1, 30, "1h 30m", 1.5},
		{8*time.Hour + 59*time.Minute + 59*time.Second, 8, 59, "8h 59m", 8 + 59.0/60},
		{-30 * time.Minute, -1, -30, "-1h -30m", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.wantLabel, func(t *testing.T) {
			tally := Tally{Net: tt.net}
			assert.Equal(t, tt.wantHours, tally.Hours())
			assert.Equal(t, tt.wantMinutes, tally.Minutes())
			assert.Equal(t, tt.wantLabel, tally.Label())
			assert.InDelta(t, tt.wantFloat, tally.FractionalHours(), 1e-9)
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatHours(0))
	assert.Equal(t, "7h 30m", FormatHours(7.5))
	assert.Equal(t, "120h 54m", FormatHours(120.9))
	assert.Equal(t, "16h 15m", FormatHours(7.5+8.75))
}

func TestDurationLabel_SortsAndDropsMalformed(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.ActionLogout, at(2024, 1, 15, 17, 0)),
		ev(attendance.ActionBreakEnded, at(2024, 1, 15, 12, 30)),
		ev(attendance.ActionLogin, time.Time{}),
		ev(attendance.ActionLogin, at(2024, 1, 15, 9, 0)),
		ev(attendance.ActionBreakStarted, at(2024, 1, 15, 12, 0)),
	}

	assert.Equal(t, "7h 30m", DurationLabel(events))
}

func TestDurationLabel_IgnoresRegularizations(t *testing.T) {
	events := append(workday(2024, 1, 15),
		regularization(attendance.ApprovalPending, at(2024, 1, 15, 18, 0), at(2024, 1, 15, 20, 0)),
		regularization(attendance.ApprovalApproved, at(2024, 1, 15, 20, 0), at(2024, 1, 15, 21, 0)),
	)

	assert.Equal(t, "7h 30m", DurationLabel(events))
}
