package stream

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dialmaster/docktui/internal/domain"
)

func TestQueue_DrainIsFIFOAndBounded(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10; i++ {
		q.Push(domain.Message{Kind: domain.KindLog, Payload: fmt.Sprintf("line %d", i)})
	}

	first := q.Drain(4)
	assert.Len(t, first, 4)
	assert.Equal(t, "line 0", first[0].Payload)
	assert.Equal(t, "line 3", first[3].Payload)

	second := q.Drain(100)
	assert.Len(t, second, 6)
	assert.Equal(t, "line 4", second[0].Payload)
	assert.Equal(t, "line 9", second[5].Payload)

	assert.Nil(t, q.Drain(10))
}

func TestQueue_DrainEmptyAndNonPositive(t *testing.T) {
	q := NewQueue()

	assert.Nil(t, q.Drain(5))

	q.Push(domain.Message{Kind: domain.KindLog, Payload: "x"})
	assert.Nil(t, q.Drain(0))
	assert.Equal(t, 1, q.Len())
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Push(domain.Message{Kind: domain.KindLog, Payload: "a"})
	q.Push(domain.Message{Kind: domain.KindLog, Payload: "b"})

	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Drain(10))
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(domain.Message{SessionID: p, Kind: domain.KindLog, Payload: "line"})
			}
		}(p)
	}
	wg.Wait()

	assert.Equal(t, 800, q.Len())

	total := 0
	for {
		batch := q.Drain(50)
		if batch == nil {
			break
		}
		assert.LessOrEqual(t, len(batch), 50)
		total += len(batch)
	}
	assert.Equal(t, 800, total)
}
