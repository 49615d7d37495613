// Package keylock provides mutual exclusion scoped to a string key.
// Status-changing operations on the same order id must run as a critical
// section, while operations on different orders proceed in parallel; a
// KeyLock gives each key its own mutex and reclaims it once unused.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock is a registry of per-key mutexes. The zero value is not usable;
// create instances with New.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty KeyLock.
func New() *KeyLock {
	return &KeyLock{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking until it is available, and
// returns the matching unlock function. The entry is removed from the
// registry once no goroutine holds or waits on it.
func (k *KeyLock) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
