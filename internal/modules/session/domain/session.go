package domain

import (
	"fmt"
	"slices"
	"strings"

	apperrors "studylog/internal/platform/errors"
)

// NoTopic is shown for sessions recorded without a topic.
const NoTopic = "(no topic)"

// Session is the canonical study session. DurationMs always equals EndAt-StartAt.
type Session struct {
	ID         string   `json:"id"`
	StartAt    int64    `json:"startAt"`
	EndAt      int64    `json:"endAt"`
	DurationMs int64    `json:"durationMs"`
	Topic      string   `json:"topic"`
	Notes      string   `json:"notes"`
	Tags       []string `json:"tags"`
}

// New builds a session from a finished interval. The interval must have a
// strictly positive length.
func New(id string, startAt, endAt int64, topic, notes string, tags []string) (Session, error) {
	if endAt <= startAt {
		return Session{}, fmt.Errorf("%w: session end must be after start", apperrors.ErrInvalidInput)
	}
	return Session{
		ID:         id,
		StartAt:    startAt,
		EndAt:      endAt,
		DurationMs: endAt - startAt,
		Topic:      topicOrDefault(topic),
		Notes:      notes,
		Tags:       CleanTags(tags),
	}, nil
}

// Revision is a full replacement of the editable fields of a session.
type Revision struct {
	Topic   string
	Notes   string
	Tags    []string
	StartAt int64
	EndAt   int64
}

// Revise validates r against now and returns the replaced session. On error the
// receiver is returned untouched.
func (s Session) Revise(r Revision, now int64) (Session, error) {
	if r.EndAt <= r.StartAt {
		return s, fmt.Errorf("%w: end must be after start", apperrors.ErrInvalidEdit)
	}
	if r.EndAt > now {
		return s, fmt.Errorf("%w: end cannot be in the future", apperrors.ErrInvalidEdit)
	}
	return Session{
		ID:         s.ID,
		StartAt:    r.StartAt,
		EndAt:      r.EndAt,
		DurationMs: r.EndAt - r.StartAt,
		Topic:      topicOrDefault(r.Topic),
		Notes:      r.Notes,
		Tags:       CleanTags(r.Tags),
	}, nil
}

// Record converts s back into the stored record shape.
func (s Session) Record() RawRecord {
	return RawRecord{
		"id":         s.ID,
		"startAt":    s.StartAt,
		"endAt":      s.EndAt,
		"durationMs": s.DurationMs,
		"topic":      s.Topic,
		"notes":      s.Notes,
		"tags":       slices.Clone(CleanTags(s.Tags)),
	}
}

// HasAnyTag reports whether s carries at least one tag of wanted.
func (s Session) HasAnyTag(wanted []string) bool {
	for _, tag := range s.Tags {
		if slices.Contains(wanted, tag) {
			return true
		}
	}
	return false
}

// CleanTags trims every tag and drops blanks, keeping order. Never returns nil.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// ParseTags splits a comma separated tag list.
func ParseTags(s string) []string {
	return CleanTags(strings.Split(s, ","))
}

// DistinctTags returns every tag used by sessions, sorted.
func DistinctTags(sessions []Session) []string {
	seen := map[string]struct{}{}
	for _, s := range sessions {
		for _, tag := range s.Tags {
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

func topicOrDefault(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return NoTopic
	}
	return topic
}
