package timer

import (
	"context"
	"testing"
	"time"

	timerdto "studylog/internal/modules/timer/dto"
)

type recordingPort struct {
	calls []string
}

func (p *recordingPort) Start(context.Context) (timerdto.StatusOutput, error) {
	p.calls = append(p.calls, "start")
	return timerdto.StatusOutput{Status: "running"}, nil
}

func (p *recordingPort) Pause(context.Context) (timerdto.StatusOutput, error) {
	p.calls = append(p.calls, "pause")
	return timerdto.StatusOutput{Status: "paused", ElapsedMs: 1_000}, nil
}

func (p *recordingPort) Resume(context.Context) (timerdto.StatusOutput, error) {
	p.calls = append(p.calls, "resume")
	return timerdto.StatusOutput{Status: "running", ElapsedMs: 1_000}, nil
}

func (p *recordingPort) Status(context.Context) (timerdto.StatusOutput, error) {
	return timerdto.StatusOutput{Status: "idle"}, nil
}

func (p *recordingPort) Stop(context.Context, timerdto.StopInput) (timerdto.StopOutput, error) {
	p.calls = append(p.calls, "stop")
	return timerdto.StopOutput{}, nil
}

func TestElapsedExtrapolatesOnlyWhileRunning(t *testing.T) {
	t.Parallel()
	sampled := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		status timerdto.StatusOutput
		at     time.Time
		want   int64
	}{
		{"running advances", timerdto.StatusOutput{Status: "running", ElapsedMs: 2_000}, sampled, 3_500},
		{"paused holds", timerdto.StatusOutput{Status: "paused", ElapsedMs: 2_000}, sampled, 2_000},
		{"idle holds", timerdto.StatusOutput{Status: "idle"}, sampled, 0},
		{"never sampled", timerdto.StatusOutput{Status: "running", ElapsedMs: 2_000}, time.Time{}, 2_000},
	}
	for _, tc := range cases {
		m := New(&recordingPort{})
		m.now = func() time.Time { return sampled.Add(1500 * time.Millisecond) }
		m.status = tc.status
		m.sampledAt = tc.at
		if got := m.Elapsed(); got != tc.want {
			t.Fatalf("%s: elapsed %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestToggleDispatchesByStatus(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"idle":    "start",
		"running": "pause",
		"paused":  "resume",
		"":        "start",
	}
	for status, want := range cases {
		port := &recordingPort{}
		m := New(port)
		m.status = timerdto.StatusOutput{Status: status}
		msg, ok := m.Toggle()().(StatusMsg)
		if !ok || msg.Err != nil {
			t.Fatalf("%q: unexpected message %#v", status, msg)
		}
		if len(port.calls) != 1 || port.calls[0] != want {
			t.Fatalf("%q: calls %v, want %s", status, port.calls, want)
		}
	}
}

func TestStoppedResetsMetadata(t *testing.T) {
	t.Parallel()
	m := New(&recordingPort{})
	m.status = timerdto.StatusOutput{Status: "running", ElapsedMs: 5_000}
	m.Topic, m.Notes, m.Tags = "Physics", "ch. 3", []string{"science"}

	m, _ = m.Update(StoppedMsg{Out: timerdto.StopOutput{Recorded: true}})
	if m.Running() || m.Elapsed() != 0 || m.Topic != "" || m.Tags != nil {
		t.Fatalf("stop should reset the pane: %+v", m)
	}
	if got := Describe(timerdto.StopOutput{}); got != "nothing recorded" {
		t.Fatalf("unexpected description %q", got)
	}
}
