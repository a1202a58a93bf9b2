package in

import (
	"context"

	"studylog/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Resume(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
}
