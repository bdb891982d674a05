package out

import (
	"context"

	"studyplanner/internal/modules/library/domain"
)

// Catalog is the bundled set of resources shipped with the binary.
type Catalog interface {
	Load(ctx context.Context) ([]domain.Resource, error)
}

// Provider fetches resources from a remote service.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string, max int) ([]domain.Resource, error)
}

type ResourceIndex interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, resource domain.Resource) error
	Get(ctx context.Context, id string) (domain.Resource, error)
	Search(ctx context.Context, query, tag string, kind domain.Kind, limit int) ([]domain.Resource, error)
	Tags(ctx context.Context) ([]string, error)
}

type PreviewFetcher interface {
	Preview(ctx context.Context, url string) (domain.Preview, error)
}

type WatchlistStore interface {
	Load(ctx context.Context) ([]domain.WatchItem, error)
	Save(ctx context.Context, items []domain.WatchItem) error
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}
