package hashmap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rowbase/rowbase/database/storage"
)

func TestHashMap(t *testing.T) {
	db, err := NewHashMap("test", "")
	if err != nil {
		t.Fatal(err)
	}

	storagetest(t, db)

	if err := db.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

// storagetest exercises the storage contract, it is shared with the other
// backend tests.
func storagetest(t *testing.T, db storage.Interface) { //nolint:thelper
	// get on empty storage
	_, err := db.Get("users", "a")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// put, get back
	if err := db.Put("users", "a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	data, err := db.Get("users", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("1")) {
		t.Fatalf("unexpected data: %q", data)
	}

	// empty keys are invalid
	if err := db.Put("users", "", []byte("1")); !errors.Is(err, storage.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	// overwrite
	if err := db.Put("users", "a", []byte("2")); err != nil {
		t.Fatal(err)
	}
	data, err = db.Get("users", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("2")) {
		t.Fatalf("unexpected data after overwrite: %q", data)
	}

	// namespaces are isolated
	_, err = db.Get("sessions", "a")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from other namespace, got %v", err)
	}

	// scan with prefix
	for _, key := range []string{"scan/a", "scan/b", "other/c"} {
		if err := db.Put("users", key, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	it, err := db.Scan("users", "scan/")
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
		t.Fatalf("expected 2 entries, got %v", keys)
	}

	// scan cancellation
	it, err = db.Scan("users", "")
	if err != nil {
		t.Fatal(err)
	}
	it.Cancel()
	for range it.Next { //nolint:revive
	}

	// delete
	if err := db.Delete("users", "a"); err != nil {
		t.Fatal(err)
	}
	_, err = db.Get("users", "a")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// deleting a non-existent entry is not an error
	if err := db.Delete("users", "missing"); err != nil {
		t.Fatal(err)
	}
}
