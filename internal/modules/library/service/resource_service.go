package service

import (
	"context"
	"fmt"
	"log"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/notify"
)

// ResourceService keeps the search index in step with the bundled catalog
// and whatever the providers return.
type ResourceService struct {
	catalog   libraryout.Catalog
	index     libraryout.ResourceIndex
	providers map[string]libraryout.Provider
	notifier  notify.Notifier
	logger    *log.Logger
}

func NewResourceService(
	catalog libraryout.Catalog,
	index libraryout.ResourceIndex,
	providers map[string]libraryout.Provider,
	notifier notify.Notifier,
	logger *log.Logger,
) *ResourceService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ResourceService{catalog: catalog, index: index, providers: providers, notifier: notifier, logger: logger}
}

// Reindex rebuilds the index from the catalog. Fetched resources are dropped.
func (s *ResourceService) Reindex(ctx context.Context) (int, error) {
	resources, err := s.catalog.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.index.Reset(ctx); err != nil {
		return 0, err
	}
	for _, resource := range resources {
		if err := s.index.Upsert(ctx, resource); err != nil {
			return 0, err
		}
	}
	return len(resources), nil
}

// ensureIndexed seeds an empty index from the catalog.
func (s *ResourceService) ensureIndexed(ctx context.Context) error {
	existing, err := s.index.Search(ctx, "", "", "", 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = s.Reindex(ctx)
	return err
}

func (s *ResourceService) Search(ctx context.Context, query, tag string, kind domain.Kind, limit int) ([]domain.Resource, error) {
	if kind != "" {
		if err := kind.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	if err := s.ensureIndexed(ctx); err != nil {
		return nil, err
	}
	return s.index.Search(ctx, query, tag, kind, limit)
}

func (s *ResourceService) Get(ctx context.Context, id string) (domain.Resource, error) {
	if err := s.ensureIndexed(ctx); err != nil {
		return domain.Resource{}, err
	}
	return s.index.Get(ctx, id)
}

func (s *ResourceService) Tags(ctx context.Context) ([]string, error) {
	if err := s.ensureIndexed(ctx); err != nil {
		return nil, err
	}
	return s.index.Tags(ctx)
}

// Fetch asks the named provider for resources and indexes them. A provider
// failure is reported to the user and yields an empty result.
func (s *ResourceService) Fetch(ctx context.Context, name, query string, max int) ([]domain.Resource, int, error) {
	provider, ok := s.providers[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown provider %q", apperrors.ErrInvalidInput, name)
	}
	resources, err := provider.Fetch(ctx, query, max)
	if err != nil {
		s.logger.Printf("%s fetch failed: %v", provider.Name(), err)
		s.notifier.Notify(notify.Error, provider.Name()+" fetch failed: "+err.Error())
		return []domain.Resource{}, 0, nil
	}
	indexed := 0
	for _, resource := range resources {
		if err := resource.Validate(); err != nil {
			s.logger.Printf("%s: skipping resource %q: %v", provider.Name(), resource.ID, err)
			continue
		}
		if err := s.index.Upsert(ctx, resource); err != nil {
			return resources, indexed, err
		}
		indexed++
	}
	return resources, indexed, nil
}
