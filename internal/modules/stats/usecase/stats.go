package usecase

import (
	"context"

	"studylog/internal/modules/stats/domain"
	"studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
	"studylog/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	report, err := i.svc.Report(ctx, input.Range, input.Tags, input.Heatmap)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	out := dto.ReportOutput{
		Range:              string(report.Range),
		RangeLabel:         report.Range.Label(),
		Cutoff:             report.Cutoff,
		Tags:               report.Tags,
		SessionCount:       report.Sessions,
		TotalSeconds:       report.Summary.TotalSeconds,
		DaysStudied:        report.Summary.DaysStudied,
		AveragePerStudyDay: report.Summary.AveragePerStudyDay,
		Days:               make([]dto.DayOutput, 0, len(report.Buckets)),
	}
	for _, day := range report.Buckets.Days() {
		out.Days = append(out.Days, dto.DayOutput{Day: day, Seconds: report.Buckets[day]})
	}
	if report.Heatmap != nil {
		out.Heatmap = toHeatmap(*report.Heatmap)
	}
	return out, nil
}

func (i *Interactor) Matching(ctx context.Context, input dto.FilterInput) ([]string, error) {
	return i.svc.Matching(ctx, input.Range, input.Tags)
}

func (i *Interactor) Ranges(context.Context) []dto.RangeOption {
	options := make([]dto.RangeOption, 0, len(domain.Ranges))
	for _, r := range domain.Ranges {
		options = append(options, dto.RangeOption{Name: string(r), Label: r.Label()})
	}
	return options
}

func (i *Interactor) NextRange(_ context.Context, current string) string {
	r, err := domain.ParseRange(current)
	if err != nil {
		return string(domain.DefaultRange)
	}
	return string(r.Next())
}

func toHeatmap(h domain.Heatmap) *dto.HeatmapOutput {
	out := &dto.HeatmapOutput{First: h.First, Last: h.Last, Weeks: make([][]dto.CellOutput, 0, len(h.Weeks))}
	for _, week := range h.Weeks {
		cells := make([]dto.CellOutput, 0, len(week))
		for _, cell := range week {
			cells = append(cells, dto.CellOutput{Day: cell.Day, Weekday: int(cell.Weekday), Seconds: cell.Seconds, Tier: cell.Tier})
		}
		out.Weeks = append(out.Weeks, cells)
	}
	return out
}
