package cart

import (
	"context"
	"sync"
)

// Store persists cart mirrors keyed by an opaque cart key. The in-memory
// implementation serves a single instance; the Redis one is for
// multi-instance deployments.
type Store interface {
	Load(ctx context.Context, key string) (Cart, error)
	Save(ctx context.Context, key string, c Cart) error
	Delete(ctx context.Context, key string) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Unmarshal(s.carts[key]), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, c Cart) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[key] = data
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
	return nil
}
