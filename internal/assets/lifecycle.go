package assets

import (
	"errors"
	"io/fs"
	"log"
	"sync"
)

// Lifecycle decides when an image asset may be deleted. Release is only ever
// called with references that have already been detached from their post
// record, so deletion can run in the background without a read racing it.
type Lifecycle struct {
	store Store
	wg    sync.WaitGroup
}

// NewLifecycle creates a lifecycle manager over the given store.
func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store}
}

// Release deletes the asset asynchronously. It never blocks the caller;
// failures are logged and the orphaned file is the accepted worst case.
// Releasing an already-absent asset is a no-op.
func (l *Lifecycle) Release(ref string) {
	if ref == "" {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		err := l.store.Remove(ref)
		switch {
		case err == nil:
			log.Printf("[Assets] Released asset: ref=%s", ref)
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("[Assets] Asset already absent: ref=%s", ref)
		default:
			log.Printf("[Assets] Failed to release asset: ref=%s err=%v", ref, err)
		}
	}()
}

// Wait blocks until all in-flight releases have finished.
func (l *Lifecycle) Wait() {
	l.wg.Wait()
}
