package inmemkv

import (
	"context"
	"sync"

	"github.com/trezcool/edutrack/storage/kv"
)

type store struct {
	mutex sync.RWMutex
	table map[string][]byte
}

var _ kv.Store = (*store)(nil)

// Open returns an empty in-memory store; its content is lost when the process exits.
func Open() kv.Store {
	return &store{table: make(map[string][]byte)}
}

func (s *store) Get(_ context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	val, ok := s.table[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *store) Put(_ context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.table[key] = append([]byte(nil), value...)
	return nil
}

func (s *store) Close() error { return nil }
