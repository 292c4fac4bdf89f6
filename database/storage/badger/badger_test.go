package badger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rowbase/rowbase/database/storage"
)

func TestBadger(t *testing.T) {
	db, err := NewBadger("test", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := db.Shutdown(); err != nil {
			t.Fatal(err)
		}
	}()

	if err := db.Put("users", "a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := db.Put("users", "ab", []byte("2")); err != nil {
		t.Fatal(err)
	}
	if err := db.Put("sessions", "a", []byte("3")); err != nil {
		t.Fatal(err)
	}

	data, err := db.Get("users", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("1")) {
		t.Fatalf("unexpected data: %q", data)
	}

	_, err = db.Get("users", "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// namespaces map to key prefixes, scans must not leak across them
	it, err := db.Scan("users", "")
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for entry := range it.Next {
		keys = append(keys, entry.Key)
	}
	if err := it.Err(); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 entries in users, got %v", keys)
	}
	for _, key := range keys {
		if key != "a" && key != "ab" {
			t.Fatalf("scan returned foreign or unstripped key %q", key)
		}
	}

	if err := db.Delete("users", "a"); err != nil {
		t.Fatal(err)
	}
	_, err = db.Get("users", "a")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := db.Maintain(context.Background()); err != nil {
		t.Fatal(err)
	}
}
