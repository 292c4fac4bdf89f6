package database

import (
	"errors"
	"fmt"

	"github.com/rowbase/rowbase/database/schema"
)

// Errors.
var (
	ErrNotFound       = errors.New("database entry not found")
	ErrReadOnly       = errors.New("database is read only")
	ErrShuttingDown   = errors.New("database system is shutting down")
	ErrNotInitialized = errors.New("database not initialized")
	ErrInitialized    = errors.New("database already initialized")
	ErrNotRegistered  = errors.New("database not registered")
	ErrLoaded         = errors.New("database already loaded")
	ErrInvalidName    = errors.New("database name must only contain alphanumeric and `_-` characters and must be at least 3 characters long")
)

// MissingKeyError is returned when the identity key is incomplete for a
// key-dependent operation.
type MissingKeyError = schema.MissingKeyError

// SchemaMismatchError is returned by strict schemas when parameters
// reference an unknown attribute name.
type SchemaMismatchError = schema.SchemaMismatchError

// PersistenceError is returned when an underlying store operation failed.
// The cause is wrapped and available via errors.Unwrap.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
