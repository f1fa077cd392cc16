package server

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryInsertionOrder(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"carol", "alice", "bob"} {
		r.Add(newSession(name+"-conn", name, nil, 1))
	}

	assert.Equal(t, []string{"carol", "alice", "bob"}, r.Usernames())

	snapshot := r.Snapshot()
	assert.Len(t, snapshot, 3)
	assert.Equal(t, "carol", snapshot[0].Username)
	assert.Equal(t, "bob", snapshot[2].Username)
}

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()

	first := newSession("c1", "alice", nil, 1)
	second := newSession("c2", "alice", nil, 1)

	assert.Nil(t, r.Add(first))
	r.Add(newSession("c3", "bob", nil, 1))

	displaced := r.Add(second)
	assert.Same(t, first, displaced)

	// The overwritten entry keeps its position.
	assert.Equal(t, []string{"alice", "bob"}, r.Usernames())
	assert.Same(t, second, r.Snapshot()[0])
}

func TestRegistryRemoveIsIdentityChecked(t *testing.T) {
	r := NewRegistry()

	first := newSession("c1", "alice", nil, 1)
	second := newSession("c2", "alice", nil, 1)

	r.Add(first)
	r.Add(second)

	// The displaced session no longer owns the slot.
	assert.False(t, r.Remove(first))
	assert.Equal(t, []string{"alice"}, r.Usernames())

	assert.True(t, r.Remove(second))
	assert.Empty(t, r.Usernames())

	// Removing an absent username is a no-op.
	assert.False(t, r.Remove(second))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "user" + strconv.Itoa(i)
			sess := newSession(name+"-conn", name, nil, 1)
			r.Add(sess)
			r.Snapshot()
			if i%2 == 0 {
				r.Remove(sess)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, r.Len())
	assert.Len(t, r.Usernames(), 25)
}
