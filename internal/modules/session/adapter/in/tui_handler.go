package in

import (
	"context"

	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
)

type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) List(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h TUIHandler) Add(ctx context.Context, input sessiondto.AddInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h TUIHandler) Edit(ctx context.Context, input sessiondto.EditInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Edit(ctx, input)
}

func (h TUIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h TUIHandler) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}

func (h TUIHandler) Sync(ctx context.Context) error {
	return h.usecase.Sync(ctx)
}
