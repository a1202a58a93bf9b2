package domain

import "math"

type Summary struct {
	TotalSeconds       int64
	DaysStudied        int
	AveragePerStudyDay int64
}

// Summarize totals the buckets. DaysStudied counts non-zero days and is at
// least one so the average is always defined.
func Summarize(buckets Buckets) Summary {
	var total int64
	days := 0
	for _, seconds := range buckets {
		total += seconds
		if seconds != 0 {
			days++
		}
	}
	days = max(days, 1)
	return Summary{
		TotalSeconds:       total,
		DaysStudied:        days,
		AveragePerStudyDay: int64(math.Round(float64(total) / float64(days))),
	}
}
