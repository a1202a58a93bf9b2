package domain

import (
	"time"

	"studylog/internal/platform/timefmt"
)

// HeatmapDays is how far back the heatmap reaches before week alignment.
const HeatmapDays = 365

type Cell struct {
	Day     string
	Weekday time.Weekday
	Seconds int64
	Tier    int
}

// Heatmap holds one column per week, Sunday first. The last column ends
// today and may be short.
type Heatmap struct {
	Weeks [][]Cell
	First string
	Last  string
}

// BuildHeatmap lays the buckets over the window ending today. Days without a
// bucket get zero seconds and tier 0.
func BuildHeatmap(buckets Buckets, tiers Tiers, now int64, loc *time.Location) Heatmap {
	today := timefmt.DayStart(now, loc)
	first := today.AddDate(0, 0, -HeatmapDays)
	first = first.AddDate(0, 0, -int(first.Weekday()))

	var weeks [][]Cell
	var week []Cell
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format(timefmt.DayKeyLayout)
		seconds := buckets[key]
		week = append(week, Cell{Day: key, Weekday: day.Weekday(), Seconds: seconds, Tier: tiers.Tier(seconds)})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}
	return Heatmap{Weeks: weeks, First: first.Format(timefmt.DayKeyLayout), Last: today.Format(timefmt.DayKeyLayout)}
}
