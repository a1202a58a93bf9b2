package in

import (
	"context"

	"studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
)

type TUIHandler struct {
	usecase statsin.Usecase
}

func NewTUIHandler(usecase statsin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx, input)
}

func (h TUIHandler) NextRange(ctx context.Context, current string) string {
	return h.usecase.NextRange(ctx, current)
}
