package slotlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutex_MutualExclusionPerKey(t *testing.T) {
	km := New()

	const goroutines = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("1:2026-01-05:08:00")
			counter++
			km.Unlock("1:2026-01-05:08:00")
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := New()

	km.Lock("1:2026-01-05:08:00")
	defer km.Unlock("1:2026-01-05:08:00")

	done := make(chan struct{})
	go func() {
		km.Lock("1:2026-01-05:08:45")
		km.Unlock("1:2026-01-05:08:45")
		close(done)
	}()

	<-done
}

func TestKeyMutex_EntryFreedAfterLastUnlock(t *testing.T) {
	km := New()

	km.Lock("key")
	km.Unlock("key")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}

func TestKeyMutex_UnlockWithoutLockPanics(t *testing.T) {
	km := New()

	assert.Panics(t, func() {
		km.Unlock("never-locked")
	})
}
