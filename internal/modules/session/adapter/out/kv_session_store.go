package out

import (
	"context"
	"fmt"

	"studyplanner/internal/modules/session/domain"
	sessionout "studyplanner/internal/modules/session/port/out"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/kvstore"
)

type KVSessionStore struct {
	store *kvstore.Guarded
}

func NewKVSessionStore(store *kvstore.Guarded) sessionout.SessionStore {
	return &KVSessionStore{store: store}
}

func (s *KVSessionStore) Load(ctx context.Context) ([]domain.Session, error) {
	raw, ok := s.store.GetItem(ctx, kvstore.KeySessions)
	if !ok {
		return []domain.Session{}, nil
	}
	sessions, err := DecodeJSON([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kvstore.KeySessions, err)
	}
	return sessions, nil
}

func (s *KVSessionStore) Save(ctx context.Context, sessions []domain.Session) error {
	raw, err := EncodeJSON(sessions)
	if err != nil {
		return err
	}
	if !s.store.SetItem(ctx, kvstore.KeySessions, string(raw)) {
		return fmt.Errorf("%w: write %s", apperrors.ErrStorageFailure, kvstore.KeySessions)
	}
	return nil
}
