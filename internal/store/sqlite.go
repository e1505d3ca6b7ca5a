package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLite persists namespaces in a SQLite database.
//
// Tables:
//
//	namespaces(path, created_at)          PRIMARY KEY (path)
//	entries(seq, namespace, key, value)   UNIQUE (namespace, key)
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the SQLite database and applies migrations.
func OpenSQLite(path string) (*SQLite, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLite{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS namespaces (
			path TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			UNIQUE (namespace, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_namespace_seq ON entries(namespace, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Node opens the namespace at path, recording it and its ancestors.
func (s *SQLite) Node(ctx context.Context, path ...string) (Node, error) {
	full, err := joinPath(path)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i := 1; i <= len(path); i++ {
		ancestor, _ := joinPath(path[:i])
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO namespaces (path, created_at) VALUES (?, ?)`, ancestor, now); err != nil {
			return nil, err
		}
	}
	return &sqliteNode{db: s.db, path: full, name: lastSegment(path)}, nil
}

// Children lists the namespaces directly below path.
func (s *SQLite) Children(ctx context.Context, path ...string) ([]string, error) {
	parent, err := joinPath(path)
	if err != nil {
		return nil, err
	}
	prefix := parent + separator
	rows, err := s.db.QueryContext(ctx,
		`SELECT path FROM namespaces WHERE substr(path, 1, length(?)) = ?`, prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	set := map[string]struct{}{}
	for rows.Next() {
		var candidate string
		if err := rows.Scan(&candidate); err != nil {
			return nil, err
		}
		if name, ok := childName(parent, candidate); ok {
			set[name] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type sqliteNode struct {
	db   *sql.DB
	path string
	name string

	mu      sync.Mutex
	pending pending
}

func (n *sqliteNode) Name() string {
	return n.name
}

func (n *sqliteNode) Keys(ctx context.Context) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	rows, err := n.db.QueryContext(ctx,
		`SELECT key FROM entries WHERE namespace = ? ORDER BY seq ASC`, n.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var persisted []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		persisted = append(persisted, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return n.pending.merge(persisted), nil
}

func (n *sqliteNode) Put(_ context.Context, key, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending.put(key, value)
	return nil
}

func (n *sqliteNode) Clear(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending.clear()
	return nil
}

// Flush writes all buffered changes in a single transaction.
func (n *sqliteNode) Flush(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending.empty() {
		return nil
	}

	tx, err := n.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if n.pending.cleared {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE namespace = ?`, n.path); err != nil {
			return err
		}
	}
	if len(n.pending.keys) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO entries (namespace, key, value) VALUES (?, ?, ?)
			 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, key := range n.pending.keys {
			if _, err := stmt.ExecContext(ctx, n.path, key, n.pending.values[key]); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", n.path, err)
	}
	committed = true
	n.pending.reset()
	return nil
}
