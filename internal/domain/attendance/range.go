package attendance

import "fmt"

// RangeName identifies a named reporting period.
type RangeName string

const (
	RangeToday     RangeName = "today"
	RangeYesterday RangeName = "yesterday"
	RangeThisWeek  RangeName = "thisWeek"
	RangeLastWeek  RangeName = "lastWeek"
	RangeThisMonth RangeName = "thisMonth"
	RangeLastMonth RangeName = "lastMonth"
	RangeAllTime   RangeName = "allTime"
	RangeCustom    RangeName = "custom"
)

var rangeNames = []RangeName{
	RangeToday, RangeYesterday, RangeThisWeek, RangeLastWeek,
	RangeThisMonth, RangeLastMonth, RangeAllTime, RangeCustom,
}

// ParseRangeName parses a range query value. Empty means allTime.
func ParseRangeName(s string) (RangeName, error) {
	if s == "" {
		return RangeAllTime, nil
	}
	for _, name := range rangeNames {
		if string(name) == s {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRange, s)
}

// RangeNames returns the supported names as strings, in display order.
func RangeNames() []string {
	out := make([]string, len(rangeNames))
	for i, n := range rangeNames {
		out[i] = string(n)
	}
	return out
}
