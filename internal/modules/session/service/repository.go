package service

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"studyplanner/internal/modules/session/domain"
	sessionout "studyplanner/internal/modules/session/port/out"
	"studyplanner/internal/platform/civil"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/notify"
)

const (
	msgLoadFailed = "Failed to load saved data"
	msgSaveFailed = "Failed to save data. Storage may be full."
)

// Repository owns the session collection. Callers only ever see copies.
// Every mutation persists the full collection; a failed write is reported
// and the in-memory state is kept.
type Repository struct {
	mu       sync.Mutex
	sessions []domain.Session
	store    sessionout.SessionStore
	notifier notify.Notifier
	logger   *log.Logger
}

func NewRepository(store sessionout.SessionStore, notifier notify.Notifier, logger *log.Logger) *Repository {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{store: store, notifier: notifier, logger: logger}
}

// Load replaces memory with the stored collection. Untrusted data resets the
// collection to empty.
func (r *Repository) Load(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	loaded, err := r.store.Load(ctx)
	if err == nil {
		err = checkStored(loaded)
	}
	if err != nil {
		r.logger.Printf("load sessions: %v", err)
		r.notifier.Notify(notify.Error, msgLoadFailed)
		r.sessions = nil
		return 0
	}
	domain.SortByDate(loaded)
	r.sessions = loaded
	return len(r.sessions)
}

// Save writes the current collection.
func (r *Repository) Save(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ctx)
}

func (r *Repository) saveLocked(ctx context.Context) bool {
	snapshot := make([]domain.Session, len(r.sessions))
	for i, s := range r.sessions {
		snapshot[i] = s.Clone()
	}
	if err := r.store.Save(ctx, snapshot); err != nil {
		r.logger.Printf("save sessions: %v", err)
		r.notifier.Notify(notify.Error, msgSaveFailed)
		return false
	}
	return true
}

// Add inserts session keeping date order and reports whether it was saved.
func (r *Repository) Add(ctx context.Context, session domain.Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session.Clone())
	domain.SortByDate(r.sessions)
	return r.saveLocked(ctx)
}

// Complete marks id reviewed on today. found is false for an unknown id, in
// which case nothing changes.
func (r *Repository) Complete(ctx context.Context, id string, today civil.Date) (updated domain.Session, found, saved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return domain.Session{}, false, false
	}
	r.sessions[idx].Complete(today)
	updated = r.sessions[idx].Clone()
	domain.SortByDate(r.sessions)
	return updated, true, r.saveLocked(ctx)
}

// Remove deletes id. found is false when it was not present.
func (r *Repository) Remove(ctx context.Context, id string) (found, saved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return false, false
	}
	r.sessions = slices.Delete(r.sessions, idx, idx+1)
	return true, r.saveLocked(ctx)
}

// Import appends the sessions whose id is not yet known. The first
// occurrence of an id wins, both against stored sessions and within the
// batch. It returns the added ids.
func (r *Repository) Import(ctx context.Context, incoming []domain.Session) (added []string, saved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	known := make(map[string]struct{}, len(r.sessions)+len(incoming))
	for _, s := range r.sessions {
		known[s.ID] = struct{}{}
	}
	for _, s := range incoming {
		if _, ok := known[s.ID]; ok {
			continue
		}
		known[s.ID] = struct{}{}
		r.sessions = append(r.sessions, s.Clone())
		added = append(added, s.ID)
	}
	if len(added) == 0 {
		return nil, true
	}
	domain.SortByDate(r.sessions)
	return added, r.saveLocked(ctx)
}

// Sessions returns a deep copy of the collection in date order.
func (r *Repository) Sessions() []domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Session, len(r.sessions))
	for i, s := range r.sessions {
		out[i] = s.Clone()
	}
	return out
}

func (r *Repository) Find(id string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return domain.Session{}, false
	}
	return r.sessions[idx].Clone(), true
}

func (r *Repository) indexLocked(id string) int {
	return slices.IndexFunc(r.sessions, func(s domain.Session) bool { return s.ID == id })
}

func checkStored(sessions []domain.Session) error {
	seen := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		if err := domain.ValidateStored(s); err != nil {
			return err
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: duplicate session id %s", apperrors.ErrMalformedData, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
