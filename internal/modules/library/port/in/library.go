package in

import (
	"context"

	"studyplanner/internal/modules/library/dto"
)

type Usecase interface {
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	ListResources(ctx context.Context, input dto.SearchInput) ([]dto.ResourceOutput, error)
	GetResource(ctx context.Context, id string) (dto.ResourceOutput, error)
	Tags(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, input dto.FetchInput) (dto.FetchOutput, error)
	Preview(ctx context.Context, url string) (dto.PreviewOutput, error)
	Open(ctx context.Context, id string) error
	Schedule(ctx context.Context, input dto.ScheduleInput) (dto.ScheduleOutput, error)
	Watchlist(ctx context.Context) ([]dto.WatchItemOutput, error)
	SaveToWatchlist(ctx context.Context, id string) (dto.WatchlistOutput, error)
	RemoveFromWatchlist(ctx context.Context, id string) (dto.WatchlistOutput, error)
}
