package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessiondto "studylog/internal/modules/session/dto"
	timerout "studylog/internal/modules/timer/adapter/out"
	"studylog/internal/modules/timer/domain"
	"studylog/internal/modules/timer/dto"
	timerin "studylog/internal/modules/timer/port/in"
	timerport "studylog/internal/modules/timer/port/out"
	"studylog/internal/modules/timer/service"
	"studylog/internal/modules/timer/usecase"
	"studylog/internal/platform/logging"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

type fakeRecorder struct {
	drafts []domain.Draft
	topics []string
	err    error
}

func (f *fakeRecorder) Record(_ context.Context, draft domain.Draft, topic, notes string, tags []string) (sessiondto.SessionOutput, error) {
	if f.err != nil {
		return sessiondto.SessionOutput{}, f.err
	}
	f.drafts = append(f.drafts, draft)
	f.topics = append(f.topics, topic)
	return sessiondto.SessionOutput{ID: "s1", StartAt: draft.StartAt, EndAt: draft.EndAt, DurationMs: draft.DurationMs, Topic: topic, Notes: notes, Tags: tags}, nil
}

type fakeNotifier struct{ messages []string }

func (f *fakeNotifier) Notify(title, message string) error {
	f.messages = append(f.messages, title+": "+message)
	return nil
}

func newTimer(clk *fakeClock, recorder *fakeRecorder, notifier timerport.Notifier) timerin.Usecase {
	svc := service.NewTimerService(clk, timerout.NewMemoryStopwatchStore(), recorder, notifier, logging.Discard())
	return usecase.NewInteractor(svc)
}

func TestStopAfterPauseAndResume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.UnixMilli(1_760_000_000_000)}
	recorder := &fakeRecorder{}
	notifier := &fakeNotifier{}
	uc := newTimer(clk, recorder, notifier)

	if out, _ := uc.Start(ctx); out.Status != "running" {
		t.Fatalf("expected running, got %+v", out)
	}
	clk.advance(time.Second)
	out, _ := uc.Pause(ctx)
	if out.Status != "paused" || out.ElapsedMs != 1_000 {
		t.Fatalf("unexpected pause status %+v", out)
	}
	clk.advance(10 * time.Minute)
	if out, _ := uc.Status(ctx); out.ElapsedMs != 1_000 {
		t.Fatalf("paused stopwatch must not accumulate, got %d", out.ElapsedMs)
	}
	_, _ = uc.Resume(ctx)
	clk.advance(500 * time.Millisecond)

	stopped, err := uc.Stop(ctx, dto.StopInput{Topic: "Calculus", Tags: []string{"math"}})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !stopped.Recorded || stopped.Session.DurationMs != 1_500 {
		t.Fatalf("expected a 1500ms session, got %+v", stopped)
	}
	now := clk.now.UnixMilli()
	if recorder.drafts[0] != (domain.Draft{StartAt: now - 1_500, EndAt: now, DurationMs: 1_500}) {
		t.Fatalf("unexpected draft %+v", recorder.drafts[0])
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected one notification, got %v", notifier.messages)
	}
	if out, _ := uc.Status(ctx); out.Status != "idle" || out.ElapsedMs != 0 {
		t.Fatalf("stopwatch must reset after stop, got %+v", out)
	}
}

func TestStopWithoutElapsedTimeRecordsNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.UnixMilli(1_760_000_000_000)}
	recorder := &fakeRecorder{}
	uc := newTimer(clk, recorder, nil)

	out, err := uc.Stop(ctx, dto.StopInput{Topic: "idle"})
	if err != nil || out.Recorded {
		t.Fatalf("idle stop should record nothing, got %+v %v", out, err)
	}
	_, _ = uc.Start(ctx)
	out, err = uc.Stop(ctx, dto.StopInput{})
	if err != nil || out.Recorded || len(recorder.drafts) != 0 {
		t.Fatalf("zero-length stop should record nothing, got %+v %v", out, err)
	}
}

func TestStopKeepsStopwatchWhenRecordingFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.UnixMilli(1_760_000_000_000)}
	recorder := &fakeRecorder{err: errors.New("boom")}
	uc := newTimer(clk, recorder, nil)

	_, _ = uc.Start(ctx)
	clk.advance(time.Minute)
	if _, err := uc.Stop(ctx, dto.StopInput{}); err == nil {
		t.Fatalf("expected record failure")
	}
	if out, _ := uc.Status(ctx); out.Status != "running" || out.ElapsedMs != 60_000 {
		t.Fatalf("stopwatch must survive a failed stop, got %+v", out)
	}
}

func TestFileStoreSharesStopwatchAcrossProcesses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".studylog", "stopwatch.json")
	clk := &fakeClock{now: time.UnixMilli(1_760_000_000_000)}
	recorder := &fakeRecorder{}

	first := usecase.NewInteractor(service.NewTimerService(clk, timerout.NewFileStopwatchStore(path), recorder, nil, logging.Discard()))
	_, _ = first.Start(ctx)
	clk.advance(2 * time.Second)

	second := usecase.NewInteractor(service.NewTimerService(clk, timerout.NewFileStopwatchStore(path), recorder, nil, logging.Discard()))
	if out, _ := second.Status(ctx); out.Status != "running" || out.ElapsedMs != 2_000 {
		t.Fatalf("second process should see the running stopwatch, got %+v", out)
	}
	if out, _ := second.Stop(ctx, dto.StopInput{Topic: "Reading"}); !out.Recorded {
		t.Fatalf("expected recorded session")
	}
	if out, _ := first.Status(ctx); out.Status != "idle" {
		t.Fatalf("first process should see the reset, got %+v", out)
	}
}
