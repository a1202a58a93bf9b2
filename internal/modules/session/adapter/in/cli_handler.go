package in

import (
	"context"

	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (sessiondto.SessionOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Add(ctx context.Context, start, end, topic, notes string, tags []string) (sessiondto.SessionOutput, error) {
	return h.usecase.Add(ctx, sessiondto.AddInput{Start: start, End: end, Topic: topic, Notes: notes, Tags: tags})
}

func (h CLIHandler) Edit(ctx context.Context, input sessiondto.EditInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Edit(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Tags(ctx context.Context) ([]string, error) {
	return h.usecase.Tags(ctx)
}

func (h CLIHandler) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Sync(ctx context.Context) error {
	return h.usecase.Sync(ctx)
}
