// Package lockpkg provides mutual exclusion keyed by opaque string identifiers.
package lockpkg

import "sync"

// KeyedMutex serializes operations per key without serializing unrelated keys.
//
// Mutexes are created lazily on first use and retained for the lifetime
// of the process.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}

	return m
}

// Lock acquires the mutex for the given key.
func (k *KeyedMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for the given key.
func (k *KeyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

// LockPair acquires the mutexes for both keys in lexicographic order, so
// callers locking the same pair in opposite order cannot deadlock. Equal
// keys are locked once.
func (k *KeyedMutex) LockPair(a, b string) {
	if a == b {
		k.Lock(a)
		return
	}

	if b < a {
		a, b = b, a
	}

	k.Lock(a)
	k.Lock(b)
}

// UnlockPair releases the mutexes acquired by LockPair.
func (k *KeyedMutex) UnlockPair(a, b string) {
	if a == b {
		k.Unlock(a)
		return
	}

	if b < a {
		a, b = b, a
	}

	k.Unlock(b)
	k.Unlock(a)
}
