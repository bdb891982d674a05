package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"studyplanner/internal/modules/library/domain"
	"studyplanner/internal/modules/library/dto"
	libraryin "studyplanner/internal/modules/library/port/in"
	libraryout "studyplanner/internal/modules/library/port/out"
	"studyplanner/internal/modules/library/service"
	sessiondto "studyplanner/internal/modules/session/dto"
	sessionin "studyplanner/internal/modules/session/port/in"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/notify"
)

// Limits of a session built from a resource.
const (
	maxSubjectRunes = 100
	maxNotesRunes   = 500
)

type Interactor struct {
	svc       *service.ResourceService
	watchlist *service.Watchlist
	preview   libraryout.PreviewFetcher
	launcher  libraryout.ExternalLauncher
	sessions  sessionin.Usecase
	notifier  notify.Notifier
}

func NewInteractor(
	svc *service.ResourceService,
	watchlist *service.Watchlist,
	preview libraryout.PreviewFetcher,
	launcher libraryout.ExternalLauncher,
	sessions sessionin.Usecase,
	notifier notify.Notifier,
) libraryin.Usecase {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Interactor{svc: svc, watchlist: watchlist, preview: preview, launcher: launcher, sessions: sessions, notifier: notifier}
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	count, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Count: count}, nil
}

func (i *Interactor) ListResources(ctx context.Context, input dto.SearchInput) ([]dto.ResourceOutput, error) {
	resources, err := i.svc.Search(ctx, input.Query, input.Tag, domain.Kind(strings.ToLower(strings.TrimSpace(input.Kind))), input.Limit)
	if err != nil {
		return nil, err
	}
	return toOutputs(resources), nil
}

func (i *Interactor) GetResource(ctx context.Context, id string) (dto.ResourceOutput, error) {
	resource, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ResourceOutput{}, err
	}
	return toOutput(resource), nil
}

func (i *Interactor) Tags(ctx context.Context) ([]string, error) {
	return i.svc.Tags(ctx)
}

func (i *Interactor) Fetch(ctx context.Context, input dto.FetchInput) (dto.FetchOutput, error) {
	resources, indexed, err := i.svc.Fetch(ctx, input.Provider, input.Query, input.Max)
	if err != nil {
		return dto.FetchOutput{}, err
	}
	return dto.FetchOutput{Resources: toOutputs(resources), Indexed: indexed}, nil
}

func (i *Interactor) Preview(ctx context.Context, url string) (dto.PreviewOutput, error) {
	if i.preview == nil {
		return dto.PreviewOutput{}, fmt.Errorf("preview fetcher is not configured")
	}
	preview, err := i.preview.Preview(ctx, url)
	if err != nil {
		i.notifier.Notify(notify.Warning, "Preview failed for "+url)
		return dto.PreviewOutput{}, err
	}
	out := dto.PreviewOutput{URL: preview.URL, Title: preview.Title, Description: preview.Description, Image: preview.Image}
	if out.Title == "" {
		out.Title = "No title"
	}
	if out.Description == "" {
		out.Description = "No description"
	}
	return out, nil
}

func (i *Interactor) Open(ctx context.Context, id string) error {
	if i.launcher == nil {
		return fmt.Errorf("external launcher is not configured")
	}
	resource, err := i.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return i.launcher.Open(ctx, resource.Link())
}

// Schedule adds a study session for a resource through the session usecase.
func (i *Interactor) Schedule(ctx context.Context, input dto.ScheduleInput) (dto.ScheduleOutput, error) {
	if i.sessions == nil {
		return dto.ScheduleOutput{}, fmt.Errorf("session usecase is not configured")
	}
	resource, err := i.svc.Get(ctx, input.ResourceID)
	if err != nil {
		return dto.ScheduleOutput{}, err
	}
	duration := input.Duration
	if duration == 0 {
		duration = domain.DefaultScheduleMinutes
	}
	added, err := i.sessions.AddSession(ctx, sessiondto.AddInput{
		Subject:  truncateRunes(resource.Title, maxSubjectRunes),
		Date:     input.Date,
		Time:     input.Time,
		Duration: duration,
		Notes:    truncateRunes("Resource: "+resource.Link(), maxNotesRunes),
		Tags:     resource.Tags,
	})
	if err != nil {
		return dto.ScheduleOutput{}, err
	}
	return dto.ScheduleOutput{
		SessionID: added.Session.ID,
		Subject:   added.Session.Subject,
		Date:      added.Session.Date,
		Saved:     added.Saved,
	}, nil
}

func (i *Interactor) Watchlist(ctx context.Context) ([]dto.WatchItemOutput, error) {
	return toWatchOutputs(i.watchlist.List(ctx)), nil
}

func (i *Interactor) SaveToWatchlist(ctx context.Context, id string) (dto.WatchlistOutput, error) {
	if strings.TrimSpace(id) == "" {
		return dto.WatchlistOutput{}, fmt.Errorf("%w: resource id is required", apperrors.ErrInvalidInput)
	}
	resource, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.WatchlistOutput{}, err
	}
	items, added, saved := i.watchlist.Add(ctx, resource.WatchItem())
	return dto.WatchlistOutput{Items: toWatchOutputs(items), Changed: added, Saved: saved}, nil
}

func (i *Interactor) RemoveFromWatchlist(ctx context.Context, id string) (dto.WatchlistOutput, error) {
	items, removed, saved := i.watchlist.Remove(ctx, id)
	return dto.WatchlistOutput{Items: toWatchOutputs(items), Changed: removed, Saved: saved}, nil
}

func toOutputs(resources []domain.Resource) []dto.ResourceOutput {
	out := make([]dto.ResourceOutput, 0, len(resources))
	for _, resource := range resources {
		out = append(out, toOutput(resource))
	}
	return out
}

func toOutput(resource domain.Resource) dto.ResourceOutput {
	out := dto.ResourceOutput{
		ID:          resource.ID,
		Title:       resource.Title,
		URL:         resource.Link(),
		Source:      resource.Source,
		Kind:        string(resource.Kind),
		Tags:        resource.Tags,
		Description: resource.Description,
		Author:      resource.Author,
		Stats:       resource.Stats,
		Icon:        resource.Icon(),
	}
	if resource.YouTubeID != "" {
		out.Thumbnail = domain.ThumbnailURL(resource.YouTubeID)
	}
	return out
}

func toWatchOutputs(items []domain.WatchItem) []dto.WatchItemOutput {
	out := make([]dto.WatchItemOutput, 0, len(items))
	for _, item := range items {
		out = append(out, dto.WatchItemOutput{ID: item.ID, Title: item.Title, URL: item.URL, Thumb: item.Thumb})
	}
	return out
}

func truncateRunes(value string, limit int) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return strings.TrimSpace(string([]rune(value)[:limit]))
}
