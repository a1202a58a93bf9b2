package timefmt

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00"},
		{999, "00:00:00"},
		{1000, "00:00:01"},
		{61_500, "00:01:01"},
		{3_600_000, "01:00:00"},
		{90_000_000, "25:00:00"},
		{-5_000, "00:00:00"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatDuration(tc.ms), "ms=%d", tc.ms)
	}
}

func TestSecondsToHMS(t *testing.T) {
	t.Parallel()
	require.Equal(t, HMS{Hours: 27, Minutes: 46, Seconds: 40}, SecondsToHMS(100_000))
	require.Equal(t, HMS{Minutes: 59, Seconds: 59}, SecondsToHMS(3599))
	require.Equal(t, HMS{}, SecondsToHMS(-1))
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	require.Equal(t, "45m", FormatSeconds(45*60+30))
	require.Equal(t, "2h 05m", FormatSeconds(2*3600+5*60))
}

func TestDayKeyUsesLocation(t *testing.T) {
	t.Parallel()
	// 2026-05-01 23:30 UTC is already May 2nd in Tokyo and still May 1st in Los Angeles.
	ms := time.Date(2026, 5, 1, 23, 30, 0, 0, time.UTC).UnixMilli()
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	require.Equal(t, "2026-05-02", DayKey(ms, tokyo))
	require.Equal(t, "2026-05-01", DayKey(ms, la))
	require.Equal(t, "2026-05-01", DayKey(ms, time.UTC))
}

func TestNextDayStartAcrossDST(t *testing.T) {
	t.Parallel()
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks spring forward on 2026-03-08, so that day lasts 23 hours.
	noon := time.Date(2026, 3, 8, 12, 0, 0, 0, ny).UnixMilli()
	start := DayStart(noon, ny)
	next := NextDayStart(noon, ny)
	require.True(t, time.Date(2026, 3, 8, 0, 0, 0, 0, ny).Equal(start), "start=%s", start)
	require.Equal(t, int64(23*time.Hour/time.Millisecond), next-start.UnixMilli())
	require.Equal(t, "2026-03-09", DayKey(next, ny))
}

func TestLocalDatetimeRoundTrip(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+2", 2*3600)
	ms := time.Date(2026, 10, 15, 9, 41, 37, 0, loc).UnixMilli()

	s := LocalDatetimeString(ms, loc)
	require.Equal(t, "2026-10-15T09:41", s)

	back, err := ParseLocalDatetime(s, loc)
	require.NoError(t, err)
	// seconds are truncated by the minute-precision format
	require.Equal(t, ms-37_000, back)
}

func TestParseLocalDatetimeRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "   ", "tomorrow", "2026-10-15 09:41", "2026-13-01T00:00"} {
		_, err := ParseLocalDatetime(in, time.UTC)
		require.Error(t, err, "input %q", in)
	}
}
