// Package stream pulls container log streams from the runtime, cleans and
// session-tags the lines, and mediates them to the display layer.
package stream

import (
	"sync"

	"github.com/dialmaster/docktui/internal/domain"
)

// Queue is the shared message queue between stream workers and the consumer
// tick. Producers are concurrent; the consumer drains from a single
// goroutine. It is unbounded: memory is bounded in practice by the
// producers' pull rate and the bounded per-tick drain.
type Queue struct {
	mu    sync.Mutex
	items []domain.Message
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a message
func (q *Queue) Push(msg domain.Message) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
}

// Drain removes and returns up to max messages in FIFO order
func (q *Queue) Drain(max int) []domain.Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 || max <= 0 {
		return nil
	}

	n := max
	if n > len(q.items) {
		n = len(q.items)
	}

	out := make([]domain.Message, n)
	copy(out, q.items[:n])
	q.items = q.items[n:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return out
}

// Len returns the number of queued messages
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear discards all queued messages
func (q *Queue) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
