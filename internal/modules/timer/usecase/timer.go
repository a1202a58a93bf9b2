package usecase

import (
	"context"

	"studylog/internal/modules/timer/domain"
	"studylog/internal/modules/timer/dto"
	timerin "studylog/internal/modules/timer/port/in"
	"studylog/internal/modules/timer/service"
)

type Interactor struct {
	svc *service.TimerService
}

func NewInteractor(svc *service.TimerService) timerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) (dto.StatusOutput, error) {
	sw, elapsed, err := i.svc.Start(ctx)
	return toStatus(sw, elapsed), err
}

func (i *Interactor) Pause(ctx context.Context) (dto.StatusOutput, error) {
	sw, elapsed, err := i.svc.Pause(ctx)
	return toStatus(sw, elapsed), err
}

func (i *Interactor) Resume(ctx context.Context) (dto.StatusOutput, error) {
	sw, elapsed, err := i.svc.Resume(ctx)
	return toStatus(sw, elapsed), err
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	sw, elapsed := i.svc.Status(ctx)
	return toStatus(sw, elapsed), nil
}

func (i *Interactor) Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error) {
	session, recorded, err := i.svc.Stop(ctx, input.Topic, input.Notes, input.Tags)
	if err != nil {
		return dto.StopOutput{}, err
	}
	return dto.StopOutput{Recorded: recorded, Session: session}, nil
}

func toStatus(sw domain.Stopwatch, elapsed int64) dto.StatusOutput {
	status := sw.Status
	if status == "" {
		status = domain.StatusIdle
	}
	return dto.StatusOutput{Status: string(status), ElapsedMs: elapsed}
}
