package registry

import "sync"

// MemoryRegistry — реестр в памяти. Дефолт и вариант для тестов:
// реестр советующий, потеря списка при рестарте допустима.
type MemoryRegistry struct {
	mu      sync.Mutex
	handles map[string]bool
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		handles: make(map[string]bool),
	}
}

func (r *MemoryRegistry) Add(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[handle] = true
	return nil
}

func (r *MemoryRegistry) Remove(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, handle)
	return nil
}

func (r *MemoryRegistry) Contains(handle string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles[handle], nil
}

func (r *MemoryRegistry) Close() error {
	return nil
}
