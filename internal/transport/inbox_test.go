// internal/transport/inbox_test.go
package transport

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInboxPreservesOrder(t *testing.T) {
	q := NewInbox()

	q.Put("first")
	q.Put("second")
	q.Put("third")

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []string{"first", "second", "third"}, q.DrainAll())
}

func TestInboxDrainAllEmpties(t *testing.T) {
	q := NewInbox()

	q.Put("only")
	assert.Equal(t, []string{"only"}, q.DrainAll())
	assert.Nil(t, q.DrainAll())
	assert.Equal(t, 0, q.Len())
}

func TestInboxDrainAllOnEmptyNeverBlocks(t *testing.T) {
	q := NewInbox()
	assert.Nil(t, q.DrainAll())
}

func TestInboxConcurrentProducers(t *testing.T) {
	q := NewInbox()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Put(fmt.Sprintf("p%d-%d", p, i))
			}
		}(p)
	}
	wg.Wait()

	got := q.DrainAll()
	assert.Len(t, got, producers*perProducer)

	// Per-producer order must survive interleaving.
	next := make(map[string]int)
	for _, line := range got {
		var p, i int
		_, err := fmt.Sscanf(line, "p%d-%d", &p, &i)
		assert.NoError(t, err)
		key := fmt.Sprintf("p%d", p)
		assert.Equal(t, next[key], i)
		next[key]++
	}
}
