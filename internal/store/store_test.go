package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/verte-zerg/wordict/internal/store"
)

// runBackendTests runs a common suite against any Backend implementation.
func runBackendTests(t *testing.T, b store.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("new node is empty", func(t *testing.T) {
		node, err := b.Node(ctx, "dicts", "empty")
		if err != nil {
			t.Fatal(err)
		}
		if node.Name() != "empty" {
			t.Fatalf("expected name empty, got %q", node.Name())
		}
		keys, err := node.Keys(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(keys) != 0 {
			t.Fatalf("expected no keys, got %q", keys)
		}
	})

	t.Run("put is visible before flush and kept in order", func(t *testing.T) {
		node, err := b.Node(ctx, "dicts", "order")
		if err != nil {
			t.Fatal(err)
		}
		for _, key := range []string{"zeta", "alpha", "mid", "alpha"} {
			if err := node.Put(ctx, key, "word"); err != nil {
				t.Fatal(err)
			}
		}
		want := []string{"zeta", "alpha", "mid"}
		assertKeys(t, node, want)

		if err := node.Flush(ctx); err != nil {
			t.Fatal(err)
		}
		reopened, err := b.Node(ctx, "dicts", "order")
		if err != nil {
			t.Fatal(err)
		}
		assertKeys(t, reopened, want)
	})

	t.Run("unflushed puts are not seen by other handles", func(t *testing.T) {
		node, err := b.Node(ctx, "dicts", "buffered")
		if err != nil {
			t.Fatal(err)
		}
		if err := node.Put(ctx, "pending", "word"); err != nil {
			t.Fatal(err)
		}
		other, err := b.Node(ctx, "dicts", "buffered")
		if err != nil {
			t.Fatal(err)
		}
		assertKeys(t, other, nil)
	})

	t.Run("reput keeps position", func(t *testing.T) {
		node, err := b.Node(ctx, "dicts", "reput")
		if err != nil {
			t.Fatal(err)
		}
		_ = node.Put(ctx, "a", "word")
		_ = node.Put(ctx, "b", "word")
		if err := node.Flush(ctx); err != nil {
			t.Fatal(err)
		}
		_ = node.Put(ctx, "c", "word")
		_ = node.Put(ctx, "a", "other")
		if err := node.Flush(ctx); err != nil {
			t.Fatal(err)
		}
		assertKeys(t, node, []string{"a", "b", "c"})
	})

	t.Run("clear", func(t *testing.T) {
		node, err := b.Node(ctx, "dicts", "clear")
		if err != nil {
			t.Fatal(err)
		}
		_ = node.Put(ctx, "gone", "word")
		if err := node.Flush(ctx); err != nil {
			t.Fatal(err)
		}
		if err := node.Clear(ctx); err != nil {
			t.Fatal(err)
		}
		assertKeys(t, node, nil)
		_ = node.Put(ctx, "kept", "word")
		assertKeys(t, node, []string{"kept"})
		if err := node.Flush(ctx); err != nil {
			t.Fatal(err)
		}
		reopened, err := b.Node(ctx, "dicts", "clear")
		if err != nil {
			t.Fatal(err)
		}
		assertKeys(t, reopened, []string{"kept"})
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		a, err := b.Node(ctx, "dicts", "iso-a")
		if err != nil {
			t.Fatal(err)
		}
		_ = a.Put(ctx, "only-a", "word")
		if err := a.Flush(ctx); err != nil {
			t.Fatal(err)
		}
		other, err := b.Node(ctx, "dicts", "iso-b")
		if err != nil {
			t.Fatal(err)
		}
		assertKeys(t, other, nil)
	})

	t.Run("children", func(t *testing.T) {
		if _, err := b.Node(ctx, "other", "x"); err != nil {
			t.Fatal(err)
		}
		names, err := b.Children(ctx, "dicts")
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"buffered", "clear", "empty", "iso-a", "iso-b", "order", "reput"}
		if !reflect.DeepEqual(names, want) {
			t.Fatalf("expected children %q, got %q", want, names)
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		for _, path := range [][]string{{}, {"dicts", ""}, {"dicts", "a/b"}} {
			if _, err := b.Node(ctx, path...); !errors.Is(err, store.ErrInvalidPath) {
				t.Fatalf("expected ErrInvalidPath for %q, got %v", path, err)
			}
		}
	})
}

func assertKeys(t *testing.T, node store.Node, want []string) {
	t.Helper()
	keys, err := node.Keys(context.Background())
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected keys %q, got %q", want, keys)
	}
}

func TestMemoryBackend(t *testing.T) {
	runBackendTests(t, store.NewMemory())
}

func TestSQLiteBackend(t *testing.T) {
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "wordict.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	runBackendTests(t, s)
}

func TestJSONBackend(t *testing.T) {
	s, err := store.OpenJSON(filepath.Join(t.TempDir(), "wordict.json"))
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	runBackendTests(t, s)
}

func TestReopenPersists(t *testing.T) {
	ctx := context.Background()
	for _, kind := range []string{store.KindSQLite, store.KindJSON} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			b, err := store.New(kind, dir)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			node, err := b.Node(ctx, "dicts", "sample")
			if err != nil {
				t.Fatal(err)
			}
			_ = node.Put(ctx, "one", "word")
			_ = node.Put(ctx, "two", "word")
			if err := node.Flush(ctx); err != nil {
				t.Fatal(err)
			}
			if err := b.Close(); err != nil {
				t.Fatal(err)
			}

			reopened, err := store.New(kind, dir)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			t.Cleanup(func() {
				_ = reopened.Close()
			})
			node, err = reopened.Node(ctx, "dicts", "sample")
			if err != nil {
				t.Fatal(err)
			}
			assertKeys(t, node, []string{"one", "two"})
		})
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := store.New("redis", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
