package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	sessiondto "studylog/internal/modules/session/dto"
	"studylog/internal/modules/timer/domain"
	timerout "studylog/internal/modules/timer/port/out"
	"studylog/internal/platform/clock"
	"studylog/internal/platform/timefmt"
)

// TimerService drives the stopwatch. Every transition is read from and written
// back to the store, so separate CLI invocations share one stopwatch.
type TimerService struct {
	clock    clock.Clock
	store    timerout.StopwatchStore
	recorder timerout.SessionRecorder
	notifier timerout.Notifier
	log      hclog.Logger

	mu sync.Mutex
}

func NewTimerService(clock clock.Clock, store timerout.StopwatchStore, recorder timerout.SessionRecorder, notifier timerout.Notifier, log hclog.Logger) *TimerService {
	return &TimerService{clock: clock, store: store, recorder: recorder, notifier: notifier, log: log.Named("timer")}
}

func (s *TimerService) Start(ctx context.Context) (domain.Stopwatch, int64, error) {
	return s.transition(ctx, domain.Stopwatch.Start)
}

func (s *TimerService) Pause(ctx context.Context) (domain.Stopwatch, int64, error) {
	return s.transition(ctx, domain.Stopwatch.Pause)
}

func (s *TimerService) Resume(ctx context.Context) (domain.Stopwatch, int64, error) {
	return s.transition(ctx, domain.Stopwatch.Resume)
}

// Status returns the stopwatch and its elapsed time without changing it.
func (s *TimerService) Status(ctx context.Context) (domain.Stopwatch, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := clock.Millis(s.clock)
	sw := s.current(ctx)
	return sw, sw.Elapsed(now)
}

// Stop records the elapsed interval as a session and resets the stopwatch.
// The stopwatch is left untouched when the session cannot be recorded.
func (s *TimerService) Stop(ctx context.Context, topic, notes string, tags []string) (sessiondto.SessionOutput, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := clock.Millis(s.clock)
	idle, draft := s.current(ctx).Stop(now)
	if draft == nil {
		if err := s.store.Save(ctx, idle); err != nil {
			return sessiondto.SessionOutput{}, false, fmt.Errorf("save stopwatch: %w", err)
		}
		return sessiondto.SessionOutput{}, false, nil
	}
	session, err := s.recorder.Record(ctx, *draft, topic, notes, tags)
	if err != nil {
		return sessiondto.SessionOutput{}, false, fmt.Errorf("record session: %w", err)
	}
	if err := s.store.Save(ctx, idle); err != nil {
		s.log.Error("reset stopwatch failed", "error", err)
	}
	s.notify(session)
	return session, true, nil
}

func (s *TimerService) transition(ctx context.Context, step func(domain.Stopwatch, int64) domain.Stopwatch) (domain.Stopwatch, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := clock.Millis(s.clock)
	before := s.current(ctx)
	after := step(before, now)
	if after != before {
		if err := s.store.Save(ctx, after); err != nil {
			return before, before.Elapsed(now), fmt.Errorf("save stopwatch: %w", err)
		}
		s.log.Debug("stopwatch transition", "from", before.Status, "to", after.Status)
	}
	return after, after.Elapsed(now), nil
}

// current loads the stored stopwatch. An unreadable file counts as idle.
func (s *TimerService) current(ctx context.Context) domain.Stopwatch {
	sw, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("load stopwatch failed, treating as idle", "error", err)
		return domain.Idle()
	}
	return sw
}

func (s *TimerService) notify(session sessiondto.SessionOutput) {
	if s.notifier == nil {
		return
	}
	message := fmt.Sprintf("%s of %s", timefmt.FormatDuration(session.DurationMs), session.Topic)
	if err := s.notifier.Notify("Study session recorded", message); err != nil {
		s.log.Warn("notification failed", "error", err)
	}
}
