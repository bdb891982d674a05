package in

import (
	"context"

	"studyplanner/internal/modules/session/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.LoadOutput, error)
	AddSession(ctx context.Context, input dto.AddInput) (dto.AddOutput, error)
	CompleteSession(ctx context.Context, id string) (dto.CompleteOutput, error)
	RemoveSession(ctx context.Context, id string) (dto.RemoveOutput, error)
	ImportSessions(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	ExportSessions(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	LoadSample(ctx context.Context) (dto.ImportOutput, error)
	ListSessions(ctx context.Context, filter dto.ListFilter) ([]dto.SessionOutput, error)
	GetSession(ctx context.Context, id string) (dto.SessionOutput, error)
	Tags(ctx context.Context) ([]string, error)
}
