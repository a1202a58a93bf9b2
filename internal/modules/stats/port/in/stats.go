package in

import (
	"context"

	"studylog/internal/modules/stats/dto"
)

type Usecase interface {
	Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	Matching(ctx context.Context, input dto.FilterInput) ([]string, error)
	Ranges(ctx context.Context) []dto.RangeOption
	NextRange(ctx context.Context, current string) string
}
