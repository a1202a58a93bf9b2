package domain

import "time"

// Interval is the part of a session aggregation needs.
type Interval struct {
	ID      string
	StartAt int64
	EndAt   int64
	Tags    []string
}

// anchor is the instant compared against a range cutoff.
func (i Interval) anchor() int64 {
	if i.EndAt != 0 {
		return i.EndAt
	}
	return i.StartAt
}

// matches reports whether the interval carries at least one selected tag.
// An empty selection matches everything.
func (i Interval) matches(selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range i.Tags {
		for _, want := range selected {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// Filter keeps intervals inside the range, then those matching the tag
// selection. Input order is preserved.
func Filter(intervals []Interval, r Range, tags []string, now int64, loc *time.Location) []Interval {
	cutoff := r.Cutoff(now, loc)
	out := make([]Interval, 0, len(intervals))
	for _, interval := range intervals {
		if interval.anchor() < cutoff || !interval.matches(tags) {
			continue
		}
		out = append(out, interval)
	}
	return out
}
