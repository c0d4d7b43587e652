// Package reentrant provides a mutex that the same owner may lock several
// times without deadlocking itself.
package reentrant

import "sync"

// Mutex is an owner-keyed recursive mutex. Go does not expose goroutine
// identity, so callers pass an explicit owner key; any comparable non-nil
// value works, typically a pointer. The zero value is unlocked.
type Mutex struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner any
	count int
}

func (m *Mutex) init() {
	if m.cond == nil {
		m.cond = sync.NewCond(&m.mu)
	}
}

// Lock acquires m for owner, blocking while a different owner holds it.
func (m *Mutex) Lock(owner any) {
	if owner == nil {
		panic("reentrant: nil owner")
	}
	m.mu.Lock()
	m.init()
	for m.count > 0 && m.owner != owner {
		m.cond.Wait()
	}
	m.owner = owner
	m.count++
	m.mu.Unlock()
}

// TryLock acquires m for owner if that can be done without blocking.
func (m *Mutex) TryLock(owner any) bool {
	if owner == nil {
		panic("reentrant: nil owner")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count > 0 && m.owner != owner {
		return false
	}
	m.owner = owner
	m.count++
	return true
}

// Unlock releases one level of owner's hold on m.
func (m *Mutex) Unlock(owner any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 || m.owner != owner {
		panic("reentrant: unlock of mutex not held by owner")
	}
	m.count--
	if m.count == 0 {
		m.owner = nil
		m.init()
		m.cond.Broadcast()
	}
}

// Held returns how many times owner currently holds m.
func (m *Mutex) Held(owner any) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != owner {
		return 0
	}
	return m.count
}
