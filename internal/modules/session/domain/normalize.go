package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// IDSource assigns identifiers to records stored without one.
type IDSource interface {
	New() string
}

// Normalize maps a stored record of any known schema onto the canonical
// session shape. It is idempotent: a canonical record comes back unchanged.
func Normalize(raw RawRecord, now int64, loc *time.Location, ids IDSource) Session {
	endAt, ok := raw.millis("endAt")
	if !ok {
		endAt, ok = legacyDate(raw, loc)
	}
	if !ok {
		endAt = now
	}

	startAt, ok := raw.millis("startAt")
	if !ok {
		if duration, hasDuration := raw.millis("durationMs"); hasDuration {
			startAt = endAt - duration
		} else {
			startAt = endAt
		}
	}
	if startAt > endAt {
		startAt = endAt
	}

	id := strings.TrimSpace(raw.text("id"))
	if id == "" {
		id = ids.New()
	}

	return Session{
		ID:         id,
		StartAt:    startAt,
		EndAt:      endAt,
		DurationMs: endAt - startAt,
		Topic:      topicOrDefault(raw.text("topic")),
		Notes:      raw.text("notes"),
		Tags:       raw.tags(),
	}
}

// NormalizeAll normalizes a batch and orders it most recent first.
func NormalizeAll(raws []RawRecord, now int64, loc *time.Location, ids IDSource) []Session {
	sessions := make([]Session, 0, len(raws))
	for _, raw := range raws {
		sessions = append(sessions, Normalize(raw, now, loc, ids))
	}
	SortRecentFirst(sessions)
	return sessions
}

// SortRecentFirst orders sessions by EndAt descending, then by ID.
func SortRecentFirst(sessions []Session) {
	slices.SortFunc(sessions, func(a, b Session) int {
		return cmp.Or(cmp.Compare(b.EndAt, a.EndAt), cmp.Compare(a.ID, b.ID))
	})
}

// legacyDate resolves the pre-endAt "date" field: epoch milliseconds first,
// then any date string dateparse understands, read in loc.
func legacyDate(raw RawRecord, loc *time.Location) (int64, bool) {
	if !raw.has("date") {
		return 0, false
	}
	if ms, ok := toInt64(raw["date"]); ok {
		return ms, ms != 0
	}
	s, ok := raw["date"].(string)
	if !ok {
		return 0, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(s), loc)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
