package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studylog/internal/platform/errors"
	"studylog/internal/platform/timefmt"
)

// Range selects how far back aggregation looks.
type Range string

const (
	RangeWeek     Range = "week"
	RangeTwoWeeks Range = "2weeks"
	RangeMonth    Range = "month"
	RangeQuarter  Range = "3months"
	RangeHalfYear Range = "6months"
	RangeYear     Range = "year"
)

const DefaultRange = RangeWeek

// Ranges lists every range in display order.
var Ranges = []Range{RangeWeek, RangeTwoWeeks, RangeMonth, RangeQuarter, RangeHalfYear, RangeYear}

func ParseRange(s string) (Range, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultRange, nil
	}
	for _, r := range Ranges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of week, 2weeks, month, 3months, 6months, year)", apperrors.ErrUnknownRange, s)
}

// Cutoff is the earliest instant still inside the range, computed with
// calendar arithmetic in loc.
func (r Range) Cutoff(now int64, loc *time.Location) int64 {
	t := timefmt.ToTime(now, loc)
	switch r {
	case RangeTwoWeeks:
		t = t.AddDate(0, 0, -14)
	case RangeMonth:
		t = t.AddDate(0, -1, 0)
	case RangeQuarter:
		t = t.AddDate(0, -3, 0)
	case RangeHalfYear:
		t = t.AddDate(0, -6, 0)
	case RangeYear:
		t = t.AddDate(-1, 0, 0)
	default:
		t = t.AddDate(0, 0, -7)
	}
	return timefmt.FromTime(t)
}

func (r Range) Label() string {
	switch r {
	case RangeTwoWeeks:
		return "Past 2 weeks"
	case RangeMonth:
		return "Past month"
	case RangeQuarter:
		return "Past 3 months"
	case RangeHalfYear:
		return "Past 6 months"
	case RangeYear:
		return "Past year"
	default:
		return "Past week"
	}
}

// Next cycles through Ranges, wrapping after the last one.
func (r Range) Next() Range {
	for i, candidate := range Ranges {
		if candidate == r {
			return Ranges[(i+1)%len(Ranges)]
		}
	}
	return DefaultRange
}
