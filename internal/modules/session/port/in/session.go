package in

import (
	"context"

	"studylog/internal/modules/session/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.LoadOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.SessionOutput, error)
	Add(ctx context.Context, input dto.AddInput) (dto.SessionOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
	List(ctx context.Context) ([]dto.SessionOutput, error)
	Tags(ctx context.Context) ([]string, error)
	Export(ctx context.Context) (dto.ExportOutput, error)
	Sync(ctx context.Context) error
}
