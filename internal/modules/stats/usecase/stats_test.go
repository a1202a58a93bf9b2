package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studylog/internal/modules/stats/domain"
	"studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
	"studylog/internal/modules/stats/service"
	"studylog/internal/modules/stats/usecase"
	"studylog/internal/platform/config"
	apperrors "studylog/internal/platform/errors"
	"studylog/internal/platform/logging"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeSource struct {
	intervals []domain.Interval
	err       error
}

func (f fakeSource) Intervals(context.Context) ([]domain.Interval, error) {
	return f.intervals, f.err
}

func newStats(t *testing.T, source fakeSource) (statsin.Usecase, time.Time) {
	t.Helper()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	tiers, err := domain.NewTiers(config.DefaultTierThresholds)
	if err != nil {
		t.Fatalf("tiers: %v", err)
	}
	svc := service.NewStatsService(fakeClock{now: now}, time.UTC, tiers, source, logging.Discard())
	return usecase.NewInteractor(svc), now
}

func TestReportAggregatesFilteredSessions(t *testing.T) {
	t.Parallel()
	at := func(d, h, m int) int64 { return time.Date(2026, 10, d, h, m, 0, 0, time.UTC).UnixMilli() }
	source := fakeSource{intervals: []domain.Interval{
		{ID: "late", StartAt: at(14, 23, 0), EndAt: at(15, 1, 0), Tags: []string{"math"}},
		{ID: "morning", StartAt: at(13, 9, 0), EndAt: at(13, 10, 0), Tags: []string{"history"}},
		{ID: "old", StartAt: at(1, 9, 0), EndAt: at(1, 10, 0), Tags: []string{"math"}},
	}}
	uc, _ := newStats(t, source)

	out, err := uc.Report(context.Background(), dto.ReportInput{Range: "week", Heatmap: true})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if out.SessionCount != 2 || out.TotalSeconds != 3*3600 || out.DaysStudied != 3 || out.AveragePerStudyDay != 3600 {
		t.Fatalf("unexpected summary %+v", out)
	}
	want := []dto.DayOutput{{Day: "2026-10-13", Seconds: 3600}, {Day: "2026-10-14", Seconds: 3600}, {Day: "2026-10-15", Seconds: 3600}}
	for i, d := range want {
		if out.Days[i] != d {
			t.Fatalf("day %d: got %+v want %+v", i, out.Days[i], d)
		}
	}
	if out.Heatmap == nil || out.Heatmap.Last != "2026-10-15" {
		t.Fatalf("expected heatmap ending today, got %+v", out.Heatmap)
	}
	last := out.Heatmap.Weeks[len(out.Heatmap.Weeks)-1]
	if cell := last[len(last)-1]; cell.Seconds != 3600 || cell.Tier != 4 {
		t.Fatalf("unexpected today cell %+v", cell)
	}

	mathOnly, err := uc.Report(context.Background(), dto.ReportInput{Range: "month", Tags: []string{"math"}})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if mathOnly.SessionCount != 2 || mathOnly.TotalSeconds != 3*3600 || mathOnly.Heatmap != nil {
		t.Fatalf("unexpected math report %+v", mathOnly)
	}
}

func TestReportWithNoSessions(t *testing.T) {
	t.Parallel()
	uc, _ := newStats(t, fakeSource{})
	out, err := uc.Report(context.Background(), dto.ReportInput{})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if out.Range != "week" || out.TotalSeconds != 0 || out.DaysStudied != 1 || out.AveragePerStudyDay != 0 || len(out.Days) != 0 {
		t.Fatalf("unexpected empty report %+v", out)
	}
}

func TestReportErrors(t *testing.T) {
	t.Parallel()
	uc, _ := newStats(t, fakeSource{})
	if _, err := uc.Report(context.Background(), dto.ReportInput{Range: "fortnight"}); !errors.Is(err, apperrors.ErrUnknownRange) {
		t.Fatalf("expected unknown range, got %v", err)
	}
	broken, _ := newStats(t, fakeSource{err: errors.New("offline")})
	if _, err := broken.Report(context.Background(), dto.ReportInput{}); err == nil {
		t.Fatalf("expected source error")
	}
}

func TestMatchingAndRanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, now := newStats(t, fakeSource{intervals: []domain.Interval{
		{ID: "a", StartAt: now.Add(-2 * time.Hour).UnixMilli(), EndAt: now.Add(-time.Hour).UnixMilli(), Tags: []string{"math"}},
		{ID: "b", StartAt: now.Add(-9 * 24 * time.Hour).UnixMilli(), EndAt: now.Add(-8 * 24 * time.Hour).UnixMilli(), Tags: []string{"math"}},
	}})
	ids, err := uc.Matching(ctx, dto.FilterInput{Range: "week", Tags: []string{"math"}})
	if err != nil || len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("unexpected matches %v (%v)", ids, err)
	}
	if got := uc.NextRange(ctx, "week"); got != "2weeks" {
		t.Fatalf("next range after week: %s", got)
	}
	if got := uc.NextRange(ctx, "bogus"); got != "week" {
		t.Fatalf("next range after unknown: %s", got)
	}
	if options := uc.Ranges(ctx); len(options) != 6 || options[5].Label != "Past year" {
		t.Fatalf("unexpected ranges %+v", options)
	}
}
