package kvstore

import (
	"context"
	"errors"
	"log"

	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/notify"
)

const quotaMessage = "Storage quota exceeded. Please clear some data."

// Guarded wraps a Store with non-failing reads and bool-reporting writes.
type Guarded struct {
	store    Store
	notifier notify.Notifier
	logger   *log.Logger
}

func NewGuarded(store Store, notifier notify.Notifier, logger *log.Logger) *Guarded {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Guarded{store: store, notifier: notifier, logger: logger}
}

// SetItem writes value and reports whether it was stored. Quota failures
// are surfaced to the user; every failure is logged.
func (g *Guarded) SetItem(ctx context.Context, key, value string) bool {
	err := g.store.Set(ctx, key, value)
	if err == nil {
		return true
	}
	if errors.Is(err, apperrors.ErrQuotaExceeded) {
		g.notifier.Notify(notify.Error, quotaMessage)
	}
	g.logger.Printf("storage error: set %s: %v", key, err)
	return false
}

// GetItem returns the stored value, or ("", false) when the key is missing
// or the read fails.
func (g *Guarded) GetItem(ctx context.Context, key string) (string, bool) {
	value, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			g.logger.Printf("storage read error: get %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

// RemoveItem deletes key and reports success.
func (g *Guarded) RemoveItem(ctx context.Context, key string) bool {
	if err := g.store.Delete(ctx, key); err != nil {
		g.logger.Printf("storage error: delete %s: %v", key, err)
		return false
	}
	return true
}
