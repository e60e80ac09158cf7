package cart

import (
	"context"
	"sync"
)

// Store はカートの保存先。
// 保存されたカートは明示的なClearまで消えない。
type Store interface {
	//保存済みのカートを返す。無ければ空スライス。
	Load(ctx context.Context, token string) ([]Item, error)
	Save(ctx context.Context, token string, items []Item) error
	Delete(ctx context.Context, token string) error
}

// MemoryStore はテスト用のインメモリ実装。
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string][]Item{}}
}

func (s *MemoryStore) Load(ctx context.Context, token string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, ok := s.carts[token]
	if !ok {
		return []Item{}, nil
	}

	items := make([]Item, len(saved))
	copy(items, saved)
	return items, nil
}

func (s *MemoryStore) Save(ctx context.Context, token string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]Item, len(items))
	copy(saved, items)
	s.carts[token] = saved
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, token)
	return nil
}
