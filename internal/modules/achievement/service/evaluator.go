package service

import (
	"context"
	"log"
	"slices"

	"studyplanner/internal/modules/achievement/domain"
	achievementout "studyplanner/internal/modules/achievement/port/out"
	"studyplanner/internal/platform/notify"
)

const msgBadgesUnreadable = "Failed to load saved badges"

// Evaluator grows the unlocked badge set. Badges are never revoked: an id
// stays in the set even when its predicate stops holding.
type Evaluator struct {
	store    achievementout.BadgeStore
	notifier notify.Notifier
	logger   *log.Logger
}

func NewEvaluator(store achievementout.BadgeStore, notifier notify.Notifier, logger *log.Logger) *Evaluator {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Evaluator{store: store, notifier: notifier, logger: logger}
}

// Unlocked returns the stored set, restricted to known badges, in
// definition order. An unreadable set is treated as empty.
func (e *Evaluator) Unlocked(ctx context.Context) []string {
	known, _ := split(e.load(ctx))
	return known
}

// Evaluate adds every badge whose predicate holds, persists the set and
// returns the known badges with the ids added by this pass. Ids this build
// does not define are kept in storage but never reported.
func (e *Evaluator) Evaluate(ctx context.Context, snapshot domain.Snapshot) (unlocked, newly []string) {
	current, unknown := split(e.load(ctx))
	have := make(map[string]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	for _, b := range domain.Definitions() {
		if _, ok := have[b.ID]; ok {
			continue
		}
		if b.Predicate(snapshot) {
			have[b.ID] = struct{}{}
			newly = append(newly, b.ID)
		}
	}
	for _, b := range domain.Definitions() {
		if _, ok := have[b.ID]; ok {
			unlocked = append(unlocked, b.ID)
		}
	}
	persisted := append(slices.Clone(unlocked), unknown...)
	if err := e.store.SaveUnlocked(ctx, persisted); err != nil {
		e.logger.Printf("save badges: %v", err)
	}
	return unlocked, newly
}

func (e *Evaluator) load(ctx context.Context) []string {
	stored, err := e.store.LoadUnlocked(ctx)
	if err != nil {
		e.logger.Printf("load badges: %v", err)
		e.notifier.Notify(notify.Error, msgBadgesUnreadable)
		return nil
	}
	return stored
}

// split separates stored ids into known badges, in definition order, and
// unknown ids in stored order. Duplicates collapse.
func split(stored []string) (known, unknown []string) {
	have := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		if _, dup := have[id]; dup {
			continue
		}
		have[id] = struct{}{}
		if _, ok := domain.Lookup(id); !ok {
			unknown = append(unknown, id)
		}
	}
	for _, b := range domain.Definitions() {
		if _, ok := have[b.ID]; ok {
			known = append(known, b.ID)
		}
	}
	return known, unknown
}
