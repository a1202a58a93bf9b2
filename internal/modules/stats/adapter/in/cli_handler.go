package in

import (
	"context"

	"studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context, rangeName string, tags []string, heatmap bool) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx, dto.ReportInput{Range: rangeName, Tags: tags, Heatmap: heatmap})
}

func (h CLIHandler) Matching(ctx context.Context, rangeName string, tags []string) ([]string, error) {
	return h.usecase.Matching(ctx, dto.FilterInput{Range: rangeName, Tags: tags})
}
