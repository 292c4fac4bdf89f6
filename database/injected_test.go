package database

import (
	"context"
	"errors"
	"testing"

	"github.com/rowbase/rowbase/database/iterator"
	"github.com/rowbase/rowbase/database/schema"
	"github.com/rowbase/rowbase/formats/dsd"
)

var errStorageDown = errors.New("storage unreachable")

// brokenStorage fails every operation, for testing error propagation.
type brokenStorage struct{}

func (b *brokenStorage) Get(namespace, key string) ([]byte, error) { return nil, errStorageDown }
func (b *brokenStorage) Put(namespace, key string, data []byte) error {
	return errStorageDown
}
func (b *brokenStorage) Delete(namespace, key string) error { return errStorageDown }
func (b *brokenStorage) Scan(namespace, keyPrefix string) (*iterator.Iterator, error) {
	return nil, errStorageDown
}
func (b *brokenStorage) ReadOnly() bool                 { return false }
func (b *brokenStorage) Maintain(context.Context) error { return nil }
func (b *brokenStorage) Shutdown() error                { return nil }

func TestPersistenceErrors(t *testing.T) {
	_, err := Register(&Database{
		Name:        "testing-broken",
		StorageType: "injected",
	})
	if err != nil {
		t.Fatal(err)
	}
	err = InjectDatabase("testing-broken", &brokenStorage{})
	if err != nil {
		t.Fatal(err)
	}

	desc, err := schema.NewMapDescriptor(
		"users-broken", []string{"name"}, []string{"email"}, dsd.JSON, false,
	)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel("testing-broken", desc, nil)
	if err != nil {
		t.Fatal(err)
	}

	var perr *PersistenceError
	_, err = m.Create(schema.Params{"name": "x"})
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if !errors.Is(err, errStorageDown) {
		t.Fatal("the store failure must be wrapped, not replaced")
	}

	_, err = m.Load(schema.Params{"name": "x"})
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	err = m.Delete(schema.Params{"name": "x"})
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}
