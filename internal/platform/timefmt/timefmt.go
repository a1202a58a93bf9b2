// Package timefmt converts between epoch-millisecond instants, durations and the
// human-facing strings the CLI and TUI show. Every calendar computation takes an
// explicit *time.Location so day boundaries follow the user's zone, not UTC.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

const (
	DayKeyLayout        = "2006-01-02"
	LocalDatetimeLayout = "2006-01-02T15:04"
)

type HMS struct {
	Hours   int64
	Minutes int64
	Seconds int64
}

// SecondsToHMS floors seconds into hours, minutes and seconds. Hours are not
// wrapped at 24. Negative input yields the zero value.
func SecondsToHMS(seconds int64) HMS {
	if seconds < 0 {
		return HMS{}
	}
	return HMS{
		Hours:   seconds / 3600,
		Minutes: (seconds % 3600) / 60,
		Seconds: seconds % 60,
	}
}

// FormatDuration renders ms as HH:MM:SS, flooring to whole seconds.
func FormatDuration(ms int64) string {
	hms := SecondsToHMS(ms / 1000)
	return fmt.Sprintf("%02d:%02d:%02d", hms.Hours, hms.Minutes, hms.Seconds)
}

// FormatSeconds renders a coarse "1h 05m" label used by summaries.
func FormatSeconds(seconds int64) string {
	hms := SecondsToHMS(seconds)
	if hms.Hours == 0 {
		return fmt.Sprintf("%dm", hms.Minutes)
	}
	return fmt.Sprintf("%dh %02dm", hms.Hours, hms.Minutes)
}

func ToTime(ms int64, loc *time.Location) time.Time {
	return time.UnixMilli(ms).In(orLocal(loc))
}

func FromTime(t time.Time) int64 {
	return t.UnixMilli()
}

// DayStart returns local midnight of the calendar day containing ms.
func DayStart(ms int64, loc *time.Location) time.Time {
	t := ToTime(ms, loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDayStart returns local midnight of the day after the one containing ms.
// time.Date normalizes day overflow and DST gaps, so this is never a fixed 24h step.
func NextDayStart(ms int64, loc *time.Location) int64 {
	t := ToTime(ms, loc)
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location()).UnixMilli()
}

// DayKey identifies the local calendar day of ms as YYYY-MM-DD.
func DayKey(ms int64, loc *time.Location) string {
	return ToTime(ms, loc).Format(DayKeyLayout)
}

// LocalDatetimeString renders ms as YYYY-MM-DDTHH:mm without a zone suffix.
func LocalDatetimeString(ms int64, loc *time.Location) string {
	return ToTime(ms, loc).Format(LocalDatetimeLayout)
}

// ParseLocalDatetime is the inverse of LocalDatetimeString. Seconds present in
// the original instant are lost on a round trip.
func ParseLocalDatetime(s string, loc *time.Location) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty datetime")
	}
	t, err := time.ParseInLocation(LocalDatetimeLayout, s, orLocal(loc))
	if err != nil {
		return 0, fmt.Errorf("parse datetime %q: want YYYY-MM-DDTHH:mm", s)
	}
	return t.UnixMilli(), nil
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
