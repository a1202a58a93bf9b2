package in

import (
	"context"

	"studylog/internal/modules/timer/dto"
	timerin "studylog/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Stop(ctx context.Context, topic, notes string, tags []string) (dto.StopOutput, error) {
	return h.usecase.Stop(ctx, dto.StopInput{Topic: topic, Notes: notes, Tags: tags})
}
