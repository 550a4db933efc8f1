package links

import (
	"context"
	"fmt"
	"sync"
)

// Store persists probe outcomes so repeated checks of the same canonical URL
// skip the network, within a run and across runs.
type Store interface {
	Get(ctx context.Context, canonicalURL string) (*LinkProbe, error)
	Put(ctx context.Context, probe *LinkProbe) (*LinkProbe, error)
}

// NotFoundError reports a canonical URL with no recorded probe.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("link probe %q not found", e.Key)
}

// MemoryStore is an in-memory Store for single runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	probes map[string]*LinkProbe
}

// NewMemoryStore creates an empty in-memory probe store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{probes: make(map[string]*LinkProbe)}
}

// Get retrieves a recorded probe, returning NotFoundError when absent.
func (m *MemoryStore) Get(_ context.Context, canonicalURL string) (*LinkProbe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.probes[canonicalURL]
	if !ok {
		return nil, &NotFoundError{Key: canonicalURL}
	}
	return cloneProbe(rec), nil
}

// Put stores the supplied probe outcome.
func (m *MemoryStore) Put(_ context.Context, probe *LinkProbe) (*LinkProbe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneProbe(probe)
	m.probes[copied.CanonicalURL] = copied
	return cloneProbe(copied), nil
}

func cloneProbe(p *LinkProbe) *LinkProbe {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}
