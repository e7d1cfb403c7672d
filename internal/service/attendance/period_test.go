package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return at(year, month, d, 0, 0)
}

func TestResolveRange(t *testing.T) {
	// Wednesday.
	wed := at(2024, 1, 17, 10, 30)

	tests := []struct {
		rng       attendance.RangeName
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{attendance.RangeToday, wed, day(2024, 1, 17), day(2024, 1, 17)},
		{attendance.RangeYesterday, wed, day(2024, 1, 16), day(2024, 1, 16)},
		{attendance.RangeThisWeek, wed, day(2024, 1, 14), day(2024, 1, 17)},
		{attendance.RangeLastWeek, wed, day(2024, 1, 7), day(2024, 1, 13)},
		{attendance.RangeThisMonth, wed, day(2024, 1, 1), day(2024, 1, 17)},
		{attendance.RangeLastMonth, wed, day(2023, 12, 1), day(2023, 12, 31)},
		// Tuesday 2 Jan: the week began on Sunday 31 Dec.
		{attendance.RangeThisWeek, at(2024, 1, 2, 8, 0), day(2023, 12, 31), day(2024, 1, 2)},
		{attendance.RangeLastWeek, at(2024, 1, 2, 8, 0), day(2023, 12, 24), day(2023, 12, 30)},
		{attendance.RangeYesterday, at(2024, 1, 1, 0, 5), day(2023, 12, 31), day(2023, 12, 31)},
		{attendance.RangeLastMonth, at(2024, 3, 31, 23, 0), day(2024, 2, 1), day(2024, 2, 29)},
		// On a Sunday this week is just today.
		{attendance.RangeThisWeek, at(2024, 1, 14, 20, 0), day(2024, 1, 14), day(2024, 1, 14)},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng)+" "+tt.now.Format("2006-01-02"), func(t *testing.T) {
			got, ok := ResolveRange(tt.rng, tt.now, nil)
			require.True(t, ok)
			assert.Equal(t, tt.wantStart, got.Start)
			assert.Equal(t, tt.wantEnd, got.End)
		})
	}
}

func TestResolveRange_NoFiltering(t *testing.T) {
	now := at(2024, 1, 17, 10, 30)

	_, ok := ResolveRange(attendance.RangeAllTime, now, nil)
	assert.False(t, ok)

	_, ok = ResolveRange(attendance.RangeName("fortnight"), now, nil)
	assert.False(t, ok)

	_, ok = ResolveRange(attendance.RangeCustom, now, nil)
	assert.False(t, ok)

	_, ok = ResolveRange(attendance.RangeCustom, now, &DateRange{Start: day(2024, 1, 1)})
	assert.False(t, ok)

	_, ok = ResolveRange(attendance.RangeCustom, now, &DateRange{End: day(2024, 1, 1)})
	assert.False(t, ok)
}

func TestFilterByRange_CustomEndIsInclusive(t *testing.T) {
	now := at(2024, 2, 1, 9, 0)
	custom := NewCustomRange(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), wib)

	before := ev(attendance.ActionLogout, at(2024, 1, 9, 23, 59))
	first := ev(attendance.ActionLogin, at(2024, 1, 10, 0, 0))
	last := ev(attendance.ActionLogout, at(2024, 1, 15, 23, 59))
	after := ev(attendance.ActionLogin, at(2024, 1, 16, 0, 0))

	got := FilterByRange([]attendance.Event{before, first, last, after}, attendance.RangeCustom, now, &custom)

	assert.Equal(t, []string{first.ID, last.ID}, ids(got))
}

func TestFilterByRange_CustomMissingBoundReturnsAll(t *testing.T) {
	now := at(2024, 2, 1, 9, 0)
	events := append(workday(2023, 6, 1), workday(2024, 1, 20)...)
	custom := DateRange{Start: day(2024, 1, 1)}

	got := FilterByRange(events, attendance.RangeCustom, now, &custom)

	assert.Equal(t, ids(events), ids(got))
}

func TestFilterByRange_TodayIgnoresTimeOfDay(t *testing.T) {
	now := at(2024, 1, 17, 8, 0)
	morning := ev(attendance.ActionLogin, at(2024, 1, 17, 0, 0))
	night := ev(attendance.ActionLogout, at(2024, 1, 17, 23, 59))
	yesterday := ev(attendance.ActionLogout, at(2024, 1, 16, 23, 59))

	got := FilterByRange([]attendance.Event{yesterday, morning, night}, attendance.RangeToday, now, nil)

	assert.Equal(t, []string{morning.ID, night.ID}, ids(got))
}

func TestFilterByRange_JudgesDayInRangeLocation(t *testing.T) {
	now := at(2024, 1, 17, 8, 0)
	// 23:30 UTC on the 16th is 06:30 on the 17th in +07:00.
	e := ev(attendance.ActionLogin, time.Date(2024, 1, 16, 23, 30, 0, 0, time.UTC))

	got := FilterByRange([]attendance.Event{e}, attendance.RangeToday, now, nil)

	assert.Len(t, got, 1)
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: day(2024, 1, 10), End: day(2024, 1, 12)}

	assert.True(t, r.Contains(at(2024, 1, 10, 0, 0)))
	assert.True(t, r.Contains(at(2024, 1, 12, 23, 59)))
	assert.False(t, r.Contains(at(2024, 1, 9, 23, 59)))
	assert.False(t, r.Contains(at(2024, 1, 13, 0, 0)))
}
