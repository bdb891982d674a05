package out

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	achievementout "studyplanner/internal/modules/achievement/port/out"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/kvstore"
)

// KVBadgeStore keeps the unlocked set as a JSON array of ids and the timer
// counter as a decimal string.
type KVBadgeStore struct {
	store *kvstore.Guarded
}

func NewKVBadgeStore(store *kvstore.Guarded) *KVBadgeStore {
	return &KVBadgeStore{store: store}
}

var (
	_ achievementout.BadgeStore   = (*KVBadgeStore)(nil)
	_ achievementout.CounterStore = (*KVBadgeStore)(nil)
)

func (s *KVBadgeStore) LoadUnlocked(ctx context.Context) ([]string, error) {
	raw, ok := s.store.GetItem(ctx, kvstore.KeyBadges)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrMalformedData, kvstore.KeyBadges, err)
	}
	return ids, nil
}

func (s *KVBadgeStore) SaveUnlocked(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode badges: %w", err)
	}
	if !s.store.SetItem(ctx, kvstore.KeyBadges, string(raw)) {
		return fmt.Errorf("%w: write %s", apperrors.ErrStorageFailure, kvstore.KeyBadges)
	}
	return nil
}

// TimerUses returns 0 for a missing or unparsable counter.
func (s *KVBadgeStore) TimerUses(ctx context.Context) int {
	raw, ok := s.store.GetItem(ctx, kvstore.KeyTimerUses)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *KVBadgeStore) SetTimerUses(ctx context.Context, n int) error {
	if !s.store.SetItem(ctx, kvstore.KeyTimerUses, strconv.Itoa(n)) {
		return fmt.Errorf("%w: write %s", apperrors.ErrStorageFailure, kvstore.KeyTimerUses)
	}
	return nil
}
