package domain

import (
	"maps"
	"math"
	"slices"
	"time"

	"studylog/internal/platform/timefmt"
)

// Buckets maps a local day key (YYYY-MM-DD) to the seconds studied that day.
type Buckets map[string]int64

// Decompose splits every interval at local midnights and accumulates the
// pieces into per-day buckets. Empty or inverted intervals are skipped.
func Decompose(intervals []Interval, loc *time.Location) Buckets {
	buckets := Buckets{}
	for _, interval := range intervals {
		buckets.Add(interval.StartAt, interval.EndAt, loc)
	}
	return buckets
}

// Add attributes [startAt, endAt) to the local days it covers.
func (b Buckets) Add(startAt, endAt int64, loc *time.Location) {
	if endAt <= startAt {
		return
	}
	for cursor := startAt; cursor < endAt; {
		segmentEnd := min(endAt, timefmt.NextDayStart(cursor, loc))
		b[timefmt.DayKey(cursor, loc)] += int64(math.Round(float64(segmentEnd-cursor) / 1000))
		cursor = segmentEnd
	}
}

// Days returns the bucket keys in calendar order.
func (b Buckets) Days() []string {
	return slices.Sorted(maps.Keys(b))
}
