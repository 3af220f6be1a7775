package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	t.Parallel()

	km := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("EMP0001")
			defer km.Unlock("EMP0001")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	t.Parallel()

	km := New()
	km.Lock("EMP0001")

	done := make(chan struct{})
	go func() {
		km.Lock("EMP0002")
		km.Unlock("EMP0002")
		close(done)
	}()

	// A different key must not block behind EMP0001.
	<-done
	km.Unlock("EMP0001")
}

func TestKeyMutex_EntriesAreReclaimed(t *testing.T) {
	t.Parallel()

	km := New()
	km.Lock("EMP0001")
	km.Unlock("EMP0001")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.entries)
}
