package out

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/kvstore"
)

// KVWatchlistStore keeps the watchlist as a JSON array, newest first.
type KVWatchlistStore struct {
	store *kvstore.Guarded
}

func NewKVWatchlistStore(store *kvstore.Guarded) libraryout.WatchlistStore {
	return &KVWatchlistStore{store: store}
}

func (s *KVWatchlistStore) Load(ctx context.Context) ([]domain.WatchItem, error) {
	raw, ok := s.store.GetItem(ctx, kvstore.KeyWatchlist)
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.WatchItem{}, nil
	}
	var items []domain.WatchItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrMalformedData, kvstore.KeyWatchlist, err)
	}
	return items, nil
}

func (s *KVWatchlistStore) Save(ctx context.Context, items []domain.WatchItem) error {
	if items == nil {
		items = []domain.WatchItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if !s.store.SetItem(ctx, kvstore.KeyWatchlist, string(raw)) {
		return fmt.Errorf("%w: write %s", apperrors.ErrStorageFailure, kvstore.KeyWatchlist)
	}
	return nil
}
