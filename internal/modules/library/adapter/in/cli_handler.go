package in

import (
	"context"

	"studyplanner/internal/modules/library/dto"
	libraryin "studyplanner/internal/modules/library/port/in"
	"studyplanner/internal/platform/civil"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, kind, tag string, limit int) ([]dto.ResourceOutput, error) {
	return h.usecase.ListResources(ctx, dto.SearchInput{Kind: kind, Tag: tag, Limit: limit})
}

func (h CLIHandler) Search(ctx context.Context, query, tag string, limit int) ([]dto.ResourceOutput, error) {
	return h.usecase.ListResources(ctx, dto.SearchInput{Query: query, Tag: tag, Limit: limit})
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.ResourceOutput, error) {
	return h.usecase.GetResource(ctx, id)
}

func (h CLIHandler) Tags(ctx context.Context) ([]string, error) {
	return h.usecase.Tags(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Fetch(ctx context.Context, provider, query string, max int) (dto.FetchOutput, error) {
	return h.usecase.Fetch(ctx, dto.FetchInput{Provider: provider, Query: query, Max: max})
}

func (h CLIHandler) Preview(ctx context.Context, url string) (dto.PreviewOutput, error) {
	return h.usecase.Preview(ctx, url)
}

func (h CLIHandler) Open(ctx context.Context, id string) error {
	return h.usecase.Open(ctx, id)
}

func (h CLIHandler) Schedule(ctx context.Context, id string, date civil.Date, at string, duration int) (dto.ScheduleOutput, error) {
	return h.usecase.Schedule(ctx, dto.ScheduleInput{ResourceID: id, Date: date, Time: at, Duration: duration})
}

func (h CLIHandler) Watchlist(ctx context.Context) ([]dto.WatchItemOutput, error) {
	return h.usecase.Watchlist(ctx)
}

func (h CLIHandler) SaveToWatchlist(ctx context.Context, id string) (dto.WatchlistOutput, error) {
	return h.usecase.SaveToWatchlist(ctx, id)
}

func (h CLIHandler) RemoveFromWatchlist(ctx context.Context, id string) (dto.WatchlistOutput, error) {
	return h.usecase.RemoveFromWatchlist(ctx, id)
}
