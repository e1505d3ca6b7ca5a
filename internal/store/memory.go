package store

import (
	"context"
	"sort"
	"sync"
)

// Memory keeps namespaces in process memory. Flushed data lives until the process exits.
type Memory struct {
	mu         sync.RWMutex
	namespaces map[string][]entry
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{namespaces: map[string][]entry{}}
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

func (m *Memory) Node(_ context.Context, path ...string) (Node, error) {
	full, err := joinPath(path)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 1; i <= len(path); i++ {
		ancestor, _ := joinPath(path[:i])
		if _, ok := m.namespaces[ancestor]; !ok {
			m.namespaces[ancestor] = nil
		}
	}
	return &memoryNode{backend: m, path: full, name: lastSegment(path)}, nil
}

func (m *Memory) Children(_ context.Context, path ...string) ([]string, error) {
	parent, err := joinPath(path)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := map[string]struct{}{}
	for candidate := range m.namespaces {
		if name, ok := childName(parent, candidate); ok {
			set[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type memoryNode struct {
	backend *Memory
	path    string
	name    string

	mu      sync.Mutex
	pending pending
}

func (n *memoryNode) Name() string {
	return n.name
}

func (n *memoryNode) Keys(_ context.Context) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backend.mu.RLock()
	persisted := entryKeys(n.backend.namespaces[n.path])
	n.backend.mu.RUnlock()
	return n.pending.merge(persisted), nil
}

func (n *memoryNode) Put(_ context.Context, key, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending.put(key, value)
	return nil
}

func (n *memoryNode) Clear(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending.clear()
	return nil
}

func (n *memoryNode) Flush(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending.empty() {
		return nil
	}
	n.backend.mu.Lock()
	current := append([]entry(nil), n.backend.namespaces[n.path]...)
	n.backend.namespaces[n.path] = n.pending.apply(current)
	n.backend.mu.Unlock()
	n.pending.reset()
	return nil
}
