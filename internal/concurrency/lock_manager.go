package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. The profession cache uses one lock per
// player so awards to different players never contend, while two awards to the
// same player serialize.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the named lock.
func (lm *LockManager) WithLock(key string, fn func()) {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	fn()
}

// Forget drops the lock for a key. Only call once no goroutine can still be
// waiting on it, e.g. after a player entry has been evicted.
func (lm *LockManager) Forget(key string) {
	lm.locks.Delete(key)
}
