package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/stats/domain"
	statsout "studylog/internal/modules/stats/port/out"
	"studylog/internal/platform/clock"
)

type Report struct {
	Range    domain.Range
	Cutoff   int64
	Tags     []string
	Sessions int
	Buckets  domain.Buckets
	Summary  domain.Summary
	Heatmap  *domain.Heatmap
}

// StatsService aggregates on demand. It holds no session state of its own.
type StatsService struct {
	clock  clock.Clock
	loc    *time.Location
	tiers  domain.Tiers
	source statsout.SessionSource
	log    hclog.Logger
}

func NewStatsService(clock clock.Clock, loc *time.Location, tiers domain.Tiers, source statsout.SessionSource, log hclog.Logger) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{clock: clock, loc: loc, tiers: tiers, source: source, log: log.Named("stats")}
}

func (s *StatsService) Report(ctx context.Context, rangeName string, tags []string, withHeatmap bool) (Report, error) {
	r, filtered, now, err := s.filter(ctx, rangeName, tags)
	if err != nil {
		return Report{}, err
	}
	buckets := domain.Decompose(filtered, s.loc)
	report := Report{
		Range:    r,
		Cutoff:   r.Cutoff(now, s.loc),
		Tags:     tags,
		Sessions: len(filtered),
		Buckets:  buckets,
		Summary:  domain.Summarize(buckets),
	}
	if withHeatmap {
		heatmap := domain.BuildHeatmap(buckets, s.tiers, now, s.loc)
		report.Heatmap = &heatmap
	}
	s.log.Debug("report built", "range", r, "sessions", len(filtered), "days", len(buckets))
	return report, nil
}

// Matching returns the IDs of intervals that pass the filter, in source order.
func (s *StatsService) Matching(ctx context.Context, rangeName string, tags []string) ([]string, error) {
	_, filtered, _, err := s.filter(ctx, rangeName, tags)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(filtered))
	for _, interval := range filtered {
		ids = append(ids, interval.ID)
	}
	return ids, nil
}

func (s *StatsService) filter(ctx context.Context, rangeName string, tags []string) (domain.Range, []domain.Interval, int64, error) {
	r, err := domain.ParseRange(rangeName)
	if err != nil {
		return "", nil, 0, err
	}
	intervals, err := s.source.Intervals(ctx)
	if err != nil {
		return "", nil, 0, fmt.Errorf("read sessions: %w", err)
	}
	now := clock.Millis(s.clock)
	return r, domain.Filter(intervals, r, tags, now, s.loc), now, nil
}
