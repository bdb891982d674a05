package kvstore

import (
	"context"
	"sync"

	apperrors "studyplanner/internal/platform/errors"
)

// MemoryStore keeps values in memory with the same quota rules as SQLiteStore.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int64
}

// NewMemoryStore creates an empty store. quota <= 0 means unlimited.
func NewMemoryStore(quota int64) *MemoryStore {
	return &MemoryStore{values: map[string]string{}, quota: quota}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quota > 0 {
		var used int64
		for k, v := range s.values {
			if k != key {
				used += entrySize(k, v)
			}
		}
		if used+entrySize(key, value) > s.quota {
			return apperrors.ErrQuotaExceeded
		}
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
