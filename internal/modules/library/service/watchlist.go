package service

import (
	"context"
	"log"

	"studyplanner/internal/modules/library/domain"
	libraryout "studyplanner/internal/modules/library/port/out"
	"studyplanner/internal/platform/notify"
)

type Watchlist struct {
	store    libraryout.WatchlistStore
	notifier notify.Notifier
	logger   *log.Logger
}

func NewWatchlist(store libraryout.WatchlistStore, notifier notify.Notifier, logger *log.Logger) *Watchlist {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watchlist{store: store, notifier: notifier, logger: logger}
}

// List returns the saved items, newest first. An unreadable list is empty.
func (w *Watchlist) List(ctx context.Context) []domain.WatchItem {
	items, err := w.store.Load(ctx)
	if err != nil {
		w.logger.Printf("load watchlist: %v", err)
		return []domain.WatchItem{}
	}
	return items
}

func (w *Watchlist) Add(ctx context.Context, item domain.WatchItem) (items []domain.WatchItem, added, saved bool) {
	items, added = domain.AddWatchItem(w.List(ctx), item)
	if !added {
		return items, false, true
	}
	if err := w.store.Save(ctx, items); err != nil {
		w.logger.Printf("save watchlist: %v", err)
		return items, true, false
	}
	w.notifier.Notify(notify.Success, "Saved to Watchlist")
	return items, true, true
}

func (w *Watchlist) Remove(ctx context.Context, id string) (items []domain.WatchItem, removed, saved bool) {
	items, removed = domain.RemoveWatchItem(w.List(ctx), id)
	if !removed {
		return items, false, true
	}
	if err := w.store.Save(ctx, items); err != nil {
		w.logger.Printf("save watchlist: %v", err)
		return items, true, false
	}
	return items, true, true
}
