package blobstore

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func testBackends(t *testing.T) map[string]func(t *testing.T) BlobStore {
	t.Helper()
	return map[string]func(t *testing.T) BlobStore{
		"sqlite": func(t *testing.T) BlobStore {
			st := NewSQLite(filepath.Join(t.TempDir(), "blobs.db"), nil)
			t.Cleanup(func() { st.Close() })
			return st
		},
		"local": func(t *testing.T) BlobStore {
			st, err := NewLocal(t.TempDir(), nil)
			if err != nil {
				t.Fatalf("new local store: %v", err)
			}
			return st
		},
	}
}

func TestPutGetDelete(t *testing.T) {
	for name, open := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			st := open(t)
			ctx := context.Background()

			if err := st.Put(ctx, "track-1", []byte("payload")); err != nil {
				t.Fatalf("put: %v", err)
			}

			data, ok, err := st.Get(ctx, "track-1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !ok || !bytes.Equal(data, []byte("payload")) {
				t.Fatalf("unexpected get result: ok=%v data=%q", ok, data)
			}

			// Replace semantics.
			if err := st.Put(ctx, "track-1", []byte("replaced")); err != nil {
				t.Fatalf("replace: %v", err)
			}
			data, ok, err = st.Get(ctx, "track-1")
			if err != nil || !ok || string(data) != "replaced" {
				t.Fatalf("unexpected replaced result: ok=%v data=%q err=%v", ok, data, err)
			}

			if err := st.Delete(ctx, "track-1"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, err := st.Get(ctx, "track-1"); err != nil || ok {
				t.Fatalf("expected absent after delete: ok=%v err=%v", ok, err)
			}
			if err := st.Delete(ctx, "track-1"); err != nil {
				t.Fatalf("delete missing should be noop: %v", err)
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, open := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			st := open(t)
			data, ok, err := st.Get(context.Background(), "never-stored")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if ok || data != nil {
				t.Fatalf("expected absent entry, got ok=%v data=%q", ok, data)
			}
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blobs.db")

	first := NewSQLite(path, nil)
	if err := first.Put(ctx, "track-1", []byte("durable")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := NewSQLite(path, nil)
	defer second.Close()
	data, ok, err := second.Get(ctx, "track-1")
	if err != nil || !ok || string(data) != "durable" {
		t.Fatalf("expected durable entry after reopen: ok=%v data=%q err=%v", ok, data, err)
	}
}

func TestSQLiteRejectsEmptyKey(t *testing.T) {
	st := NewSQLite(filepath.Join(t.TempDir(), "blobs.db"), nil)
	defer st.Close()
	if err := st.Put(context.Background(), "  ", []byte("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestLocalRejectsTraversalKeys(t *testing.T) {
	st, err := NewLocal(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	for _, key := range []string{"", "..", "../evil", "a/b"} {
		if err := st.Put(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
