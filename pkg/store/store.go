// Package store holds authoritative intent state. The orchestrator is
// stateless across calls; callers read an intent here, run an operation on
// it, and write the mutated value back.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/naisu-fi/naisu-agent/pkg/models"
)

// Store is the intent persistence interface
type Store interface {
	Get(id string) (*models.Intent, bool)
	Put(intent *models.Intent)
	Update(id string, fn func(*models.Intent)) bool
	List() []*models.Intent
	ListByCreator(address string) []*models.Intent
}

// MemoryStore is an in-memory Store. Values are copied on the way in and
// out so callers can mutate their intents without racing the map.
type MemoryStore struct {
	mu      sync.RWMutex
	intents map[string]*models.Intent
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{intents: make(map[string]*models.Intent)}
}

// Get returns a copy of the intent with the given id
func (m *MemoryStore) Get(id string) (*models.Intent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	intent, ok := m.intents[id]
	if !ok {
		return nil, false
	}
	clone := *intent
	return &clone, true
}

// Put stores a copy of the intent, replacing any previous version
func (m *MemoryStore) Put(intent *models.Intent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *intent
	m.intents[intent.ID] = &clone
}

// Update applies fn to the stored intent under the write lock, so
// concurrent writers cannot interleave between read and write. Reports
// whether the intent exists.
func (m *MemoryStore) Update(id string, fn func(*models.Intent)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	intent, ok := m.intents[id]
	if !ok {
		return false
	}
	fn(intent)
	return true
}

// List returns all intents ordered by creation time, then id
func (m *MemoryStore) List() []*models.Intent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Intent, 0, len(m.intents))
	for _, intent := range m.intents {
		clone := *intent
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListByCreator returns the intents created by the given source address.
// Address comparison is case-insensitive to tolerate mixed-case hex.
func (m *MemoryStore) ListByCreator(address string) []*models.Intent {
	all := m.List()
	out := make([]*models.Intent, 0)
	for _, intent := range all {
		if strings.EqualFold(intent.SourceAddress, address) {
			out = append(out, intent)
		}
	}
	return out
}

// PendingCount returns the number of intents in a non-terminal state
func (m *MemoryStore) PendingCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, intent := range m.intents {
		if !intent.Status.IsTerminal() {
			count++
		}
	}
	return count
}
