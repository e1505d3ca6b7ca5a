package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// JSONFile stores every namespace in a single JSON document.
//
// Layout:
//
//	{"namespaces": {"dicts": [], "dicts/default": [{"key": "cat", "value": "word"}]}}
type JSONFile struct {
	mu   sync.Mutex
	path string
}

type jsonDocument struct {
	Namespaces map[string][]entry `json:"namespaces"`
}

// OpenJSON opens the JSON document at path, creating its directory.
// The file itself is created on the first write.
func OpenJSON(path string) (*JSONFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &JSONFile{path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close is a no-op; every flush is already on disk.
func (s *JSONFile) Close() error {
	return nil
}

func (s *JSONFile) load() (jsonDocument, error) {
	doc := jsonDocument{Namespaces: map[string][]entry{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	if doc.Namespaces == nil {
		doc.Namespaces = map[string][]entry{}
	}
	return doc, nil
}

func (s *JSONFile) save(doc jsonDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), "wordict-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFile) Node(_ context.Context, path ...string) (Node, error) {
	full, err := joinPath(path)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	changed := false
	for i := 1; i <= len(path); i++ {
		ancestor, _ := joinPath(path[:i])
		if _, ok := doc.Namespaces[ancestor]; !ok {
			doc.Namespaces[ancestor] = []entry{}
			changed = true
		}
	}
	if changed {
		if err := s.save(doc); err != nil {
			return nil, err
		}
	}
	return &jsonNode{backend: s, path: full, name: lastSegment(path)}, nil
}

func (s *JSONFile) Children(_ context.Context, path ...string) ([]string, error) {
	parent, err := joinPath(path)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	set := map[string]struct{}{}
	for candidate := range doc.Namespaces {
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

type jsonNode struct {
	backend *JSONFile
	path    string
	name    string

	mu      sync.Mutex
	pending pending
}

func (n *jsonNode) Name() string {
	return n.name
}

func (n *jsonNode) Keys(_ context.Context) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backend.mu.Lock()
	doc, err := n.backend.load()
	n.backend.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return n.pending.merge(entryKeys(doc.Namespaces[n.path])), nil
}

func (n *jsonNode) Put(_ context.Context, key, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending.put(key, value)
	return nil
}

func (n *jsonNode) Clear(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending.clear()
	return nil
}

// Flush rewrites the document with the buffered changes applied.
func (n *jsonNode) Flush(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending.empty() {
		return nil
	}
	n.backend.mu.Lock()
	defer n.backend.mu.Unlock()
	doc, err := n.backend.load()
	if err != nil {
		return err
	}
	doc.Namespaces[n.path] = n.pending.apply(doc.Namespaces[n.path])
	if err := n.backend.save(doc); err != nil {
		return err
	}
	n.pending.reset()
	return nil
}
