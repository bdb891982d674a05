package out

import (
	"context"
	"strings"

	preferenceout "studyplanner/internal/modules/preference/port/out"
	"studyplanner/internal/platform/kvstore"
)

type KVPreferenceStore struct {
	store *kvstore.Guarded
}

func NewKVPreferenceStore(store *kvstore.Guarded) preferenceout.PreferenceStore {
	return &KVPreferenceStore{store: store}
}

func (s *KVPreferenceStore) Theme(ctx context.Context) (string, bool) {
	raw, ok := s.store.GetItem(ctx, kvstore.KeyTheme)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

func (s *KVPreferenceStore) SetTheme(ctx context.Context, theme string) bool {
	return s.store.SetItem(ctx, kvstore.KeyTheme, theme)
}

// TourCompleted is true only for the stored string "true".
func (s *KVPreferenceStore) TourCompleted(ctx context.Context) bool {
	raw, ok := s.store.GetItem(ctx, kvstore.KeyTourCompleted)
	return ok && raw == "true"
}

func (s *KVPreferenceStore) SetTourCompleted(ctx context.Context, completed bool) bool {
	if !completed {
		return s.store.RemoveItem(ctx, kvstore.KeyTourCompleted)
	}
	return s.store.SetItem(ctx, kvstore.KeyTourCompleted, "true")
}
