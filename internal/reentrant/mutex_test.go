package reentrant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type token struct{ _ byte }

func TestNestedLockSameOwner(t *testing.T) {
	var m Mutex
	a := &token{}
	m.Lock(a)
	m.Lock(a)
	m.Lock(a)
	assert.Equal(t, 3, m.Held(a))
	m.Unlock(a)
	m.Unlock(a)
	assert.Equal(t, 1, m.Held(a))
	m.Unlock(a)
	assert.Equal(t, 0, m.Held(a))
}

func TestOtherOwnerBlocks(t *testing.T) {
	var m Mutex
	a, b := &token{}, &token{}
	m.Lock(a)
	m.Lock(a)
	assert.False(t, m.TryLock(b))

	acquired := make(chan struct{})
	go func() {
		m.Lock(b)
		close(acquired)
	}()

	m.Unlock(a)
	select {
	case <-acquired:
		t.Fatal("b acquired the mutex while a still held it")
	case <-time.After(20 * time.Millisecond):
	}

	m.Unlock(a)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("b never acquired the mutex")
	}
	assert.Equal(t, 1, m.Held(b))
	m.Unlock(b)
}

func TestUnlockByWrongOwnerPanics(t *testing.T) {
	var m Mutex
	a, b := &token{}, &token{}
	m.Lock(a)
	assert.Panics(t, func() { m.Unlock(b) })
	m.Unlock(a)
	assert.Panics(t, func() { m.Unlock(a) })
}
