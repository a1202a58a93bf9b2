package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "studylog/internal/platform/errors"
)

func TestNewRejectsEmptyInterval(t *testing.T) {
	t.Parallel()
	_, err := New("x", 5_000, 5_000, "", "", nil)
	require.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()
	s, err := New("x", 1_000, 4_000, "   ", "", []string{" a ", "", "b"})
	require.NoError(t, err)
	require.Equal(t, int64(3_000), s.DurationMs)
	require.Equal(t, NoTopic, s.Topic)
	require.Equal(t, []string{"a", "b"}, s.Tags)
}

func TestReviseRejectsInvalidIntervals(t *testing.T) {
	t.Parallel()
	orig, err := New("x", 1_000, 4_000, "Physics", "", []string{"science"})
	require.NoError(t, err)

	cases := map[string]Revision{
		"end before start": {Topic: "t", StartAt: 5_000, EndAt: 4_000},
		"end equals start": {Topic: "t", StartAt: 5_000, EndAt: 5_000},
		"end in future":    {Topic: "t", StartAt: 5_000, EndAt: testNow + 1},
	}
	for name, rev := range cases {
		got, err := orig.Revise(rev, testNow)
		require.Error(t, err, name)
		require.True(t, errors.Is(err, apperrors.ErrInvalidEdit), name)
		require.Equal(t, orig, got, name)
	}
}

func TestReviseReplacesAllFields(t *testing.T) {
	t.Parallel()
	orig, err := New("x", 1_000, 4_000, "Physics", "old", []string{"science"})
	require.NoError(t, err)

	got, err := orig.Revise(Revision{Topic: "Chemistry", Notes: "new", Tags: []string{"lab"}, StartAt: 10_000, EndAt: 70_000}, testNow)
	require.NoError(t, err)
	require.Equal(t, Session{ID: "x", StartAt: 10_000, EndAt: 70_000, DurationMs: 60_000, Topic: "Chemistry", Notes: "new", Tags: []string{"lab"}}, got)
}

func TestTagHelpers(t *testing.T) {
	t.Parallel()
	require.Equal(t, []string{"math", "review"}, ParseTags(" math, ,review,"))
	require.Equal(t, []string{}, ParseTags(""))

	sessions := []Session{
		{ID: "1", Tags: []string{"math", "review"}},
		{ID: "2", Tags: []string{"history", "math"}},
		{ID: "3", Tags: []string{}},
	}
	require.Equal(t, []string{"history", "math", "review"}, DistinctTags(sessions))
	require.True(t, sessions[0].HasAnyTag([]string{"math"}))
	require.False(t, sessions[1].HasAnyTag([]string{"review"}))
	require.False(t, sessions[2].HasAnyTag([]string{"math"}))
}
