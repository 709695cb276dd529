package memory

import (
	"context"
	"sync"

	"github.com/vncsmyrnk/tamaire/internal/core/ports"
)

// kvRepository keeps values in process memory. State is lost on exit.
type kvRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewKVRepository() ports.KeyValueStore {
	return &kvRepository{
		values: make(map[string][]byte),
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append([]byte(nil), value...)
	return nil
}
