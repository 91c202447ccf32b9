package logs

// RingBuffer is a fixed-size circular buffer of log lines. Insertion evicts
// the oldest line once capacity is reached. It is index addressable in
// chronological order, which the marker-context algorithm relies on.
//
// The buffer is mutated only by the consumer-side tick, so it carries no
// internal locking.
type RingBuffer struct {
	lines    []string
	head     int // next write position
	count    int // current number of lines
	capacity int // max lines
}

// NewRingBuffer creates a new ring buffer with the given capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 2000
	}
	return &RingBuffer{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

// Push adds a line to the buffer, evicting the oldest line when full
func (b *RingBuffer) Push(line string) {
	b.lines[b.head] = line
	b.head = (b.head + 1) % b.capacity

	if b.count < b.capacity {
		b.count++
	}
}

// At returns the line at index i in chronological order, 0 being the oldest.
// i must be in [0, Len()).
func (b *RingBuffer) At(i int) string {
	start := 0
	if b.count == b.capacity {
		start = b.head // oldest line is at head when full
	}
	return b.lines[(start+i)%b.capacity]
}

// All returns every buffered line in chronological order
func (b *RingBuffer) All() []string {
	if b.count == 0 {
		return nil
	}
	result := make([]string, b.count)
	for i := 0; i < b.count; i++ {
		result[i] = b.At(i)
	}
	return result
}

// Len returns the current number of buffered lines
func (b *RingBuffer) Len() int {
	return b.count
}

// Cap returns the maximum capacity of the buffer
func (b *RingBuffer) Cap() int {
	return b.capacity
}

// Clear removes all lines from the buffer
func (b *RingBuffer) Clear() {
	b.head = 0
	b.count = 0
}
