package usecase

import (
	"context"
	"slices"

	"studylog/internal/modules/session/domain"
	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
	"studylog/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) (sessiondto.LoadOutput, error) {
	loaded, migrated := i.svc.Load(ctx)
	return sessiondto.LoadOutput{Loaded: loaded, Migrated: migrated}, nil
}

func (i *Interactor) Create(ctx context.Context, input sessiondto.CreateInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Create(ctx, input.StartAt, input.EndAt, input.Topic, input.Notes, input.Tags)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Add(ctx context.Context, input sessiondto.AddInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Add(ctx, service.Endpoints{Start: input.Start, End: input.End}, input.Topic, input.Notes, input.Tags)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Edit(ctx context.Context, input sessiondto.EditInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Edit(ctx, input.ID, service.Endpoints{Start: input.Start, End: input.End, StartAt: input.StartAt, EndAt: input.EndAt}, input.Topic, input.Notes, input.Tags)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Get(_ context.Context, id string) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Get(id)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) List(_ context.Context) ([]sessiondto.SessionOutput, error) {
	sessions := i.svc.List()
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toOutput(session))
	}
	return out, nil
}

func (i *Interactor) Tags(_ context.Context) ([]string, error) {
	return i.svc.Tags(), nil
}

func (i *Interactor) Export(_ context.Context) (sessiondto.ExportOutput, error) {
	name, payload, count, err := i.svc.Export()
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return sessiondto.ExportOutput{FileName: name, Data: payload, Count: count}, nil
}

func (i *Interactor) Sync(ctx context.Context) error {
	return i.svc.Sync(ctx)
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:         s.ID,
		StartAt:    s.StartAt,
		EndAt:      s.EndAt,
		DurationMs: s.DurationMs,
		Topic:      s.Topic,
		Notes:      s.Notes,
		Tags:       slices.Clone(s.Tags),
	}
}
