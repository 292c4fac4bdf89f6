// Package iterator provides the iterator for storage scans.
package iterator

import (
	"sync"

	"github.com/tevino/abool"
)

// Entry is one key/data pair yielded by a scan.
type Entry struct {
	Key  string
	Data []byte
}

// Iterator defines the iterator structure.
type Iterator struct {
	Next chan Entry
	Done chan struct{}

	errLock  sync.Mutex
	err      error
	doneFlag *abool.AtomicBool
}

// New creates a new Iterator.
func New() *Iterator {
	return &Iterator{
		Next:     make(chan Entry, 10),
		Done:     make(chan struct{}),
		doneFlag: abool.NewBool(false),
	}
}

// Finish is called by the storage to signal the end of the scan. It may only
// be called once.
func (it *Iterator) Finish(err error) {
	close(it.Next)

	it.errLock.Lock()
	it.err = err
	it.errLock.Unlock()

	if it.doneFlag.SetToIf(false, true) {
		close(it.Done)
	}
}

// Cancel is called by the consumer to abort the scan early. The storage
// stops sending entries as soon as it observes the cancellation.
func (it *Iterator) Cancel() {
	if it.doneFlag.SetToIf(false, true) {
		close(it.Done)
	}
}

// Err returns the scan error, if there was one. It may only be called after
// the Next channel was closed.
func (it *Iterator) Err() error {
	it.errLock.Lock()
	defer it.errLock.Unlock()
	return it.err
}
