package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a Persister when nothing is stored under the key.
var ErrNotFound = errors.New("session: nothing persisted")

// Persister is durable storage for the serialized session, addressed by the
// store's fixed namespace key.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context, key string) error
	Name() string
}

// MemoryPersister keeps the record in process memory. A second Store built on
// the same MemoryPersister behaves like a reload.
type MemoryPersister struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string][]byte)}
}

func (p *MemoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (p *MemoryPersister) Save(_ context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = append([]byte(nil), data...)
	return nil
}

func (p *MemoryPersister) Clear(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, key)
	return nil
}

func (p *MemoryPersister) Name() string { return "memory" }
