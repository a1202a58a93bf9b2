package sessions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	sessiondto "studylog/internal/modules/session/dto"
)

type stubPort struct {
	sessions []sessiondto.SessionOutput
	err      error
}

func (p stubPort) List(context.Context) ([]sessiondto.SessionOutput, error) {
	return p.sessions, p.err
}

func TestReloadFillsListAndSelection(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC).UnixMilli()
	port := stubPort{sessions: []sessiondto.SessionOutput{
		{ID: "s2", StartAt: start, EndAt: start + 5_400_000, DurationMs: 5_400_000, Topic: "Algebra", Tags: []string{"math", "exam"}},
		{ID: "s1", StartAt: start - 86_400_000, EndAt: start - 82_800_000, DurationMs: 3_600_000, Topic: "History"},
	}}
	m := New(port, time.UTC)
	if _, ok := m.Selected(); ok {
		t.Fatalf("nothing should be selected before loading")
	}

	m, _ = m.Update(m.Reload()())
	got, ok := m.Selected()
	if !ok || got.ID != "s2" {
		t.Fatalf("expected the most recent session selected, got %+v %v", got, ok)
	}

	item := sessionItem{session: port.sessions[0], loc: time.UTC}
	if desc := item.Description(); desc != "2026-10-15T09:00  01:30:00  #math #exam" {
		t.Fatalf("unexpected description %q", desc)
	}
	if !strings.Contains(item.FilterValue(), "exam") {
		t.Fatalf("tags should be searchable: %q", item.FilterValue())
	}
}

func TestReloadErrorLeavesListEmpty(t *testing.T) {
	t.Parallel()
	m := New(stubPort{err: errors.New("store offline")}, nil)
	m, _ = m.Update(m.Reload()())
	if _, ok := m.Selected(); ok {
		t.Fatalf("failed load must not select anything")
	}
	if !strings.Contains(m.list.Title, "store offline") {
		t.Fatalf("error should surface in the title, got %q", m.list.Title)
	}
}
