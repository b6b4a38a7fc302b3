// Package memstore is an in-process store. Nothing survives the process.
package memstore

import (
	"context"
	"sync"

	"github.com/v-s-abhishek/PickList/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func New() *Store {
	return &Store{records: map[string][]byte{}}
}

func (s *Store) Load(_ context.Context, key string) ([]byte, bool, error) {
	if err := store.ValidKey(key); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (s *Store) Save(_ context.Context, key string, data []byte) error {
	if err := store.ValidKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	s.records[key] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	if err := store.ValidKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}
