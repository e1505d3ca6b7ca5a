// Package store provides the hierarchical key-value backends that persist dictionaries.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Backend kinds accepted by New.
const (
	KindSQLite = "sqlite"
	KindJSON   = "json"
	KindMemory = "memory"
)

// ErrInvalidPath is returned for empty path segments or segments containing the separator.
var ErrInvalidPath = errors.New("invalid namespace path")

const separator = "/"

// Backend is a user-scoped tree of namespaces.
type Backend interface {
	// Node opens the namespace at path, creating it when missing.
	Node(ctx context.Context, path ...string) (Node, error)
	// Children lists the names of the namespaces directly below path, sorted.
	Children(ctx context.Context, path ...string) ([]string, error)
	Close() error
}

// Node is a single namespace of string keys.
//
// Put and Clear are buffered until Flush. Keys reflects buffered changes.
type Node interface {
	Name() string
	Keys(ctx context.Context) ([]string, error)
	Put(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
	Flush(ctx context.Context) error
}

// New opens a backend of the given kind rooted in dataDir.
func New(kind, dataDir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindSQLite, "":
		return OpenSQLite(filepath.Join(dataDir, "wordict.db"))
	case KindJSON:
		return OpenJSON(filepath.Join(dataDir, "wordict.json"))
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: sqlite, json, memory)", kind)
	}
}

func joinPath(path []string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for _, seg := range path {
		if seg == "" || strings.Contains(seg, separator) {
			return "", fmt.Errorf("%w: segment %q", ErrInvalidPath, seg)
		}
	}
	return strings.Join(path, separator), nil
}

// childName returns the first segment of candidate below parent, if any.
func childName(parent, candidate string) (string, bool) {
	prefix := parent + separator
	if !strings.HasPrefix(candidate, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(candidate, prefix)
	if rest == "" {
		return "", false
	}
	if i := strings.Index(rest, separator); i >= 0 {
		rest = rest[:i]
	}
	return rest, true
}

func lastSegment(path []string) string {
	return path[len(path)-1]
}
