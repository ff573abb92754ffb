package grid

// Queue is a fixed-capacity FIFO of cells backed by a ring buffer
// Reused across flood fills to avoid per-tick allocation
type Queue struct {
	items []Cell
	head  int
	count int
}

// NewQueue allocates a queue holding at most capacity cells
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{items: make([]Cell, capacity)}
}

// Push appends c, returns false and drops c when the queue is full
func (q *Queue) Push(c Cell) bool {
	if q.count == len(q.items) {
		return false
	}
	q.items[(q.head+q.count)%len(q.items)] = c
	q.count++
	return true
}

// Pop removes the oldest cell, ok is false when empty
func (q *Queue) Pop() (c Cell, ok bool) {
	if q.count == 0 {
		return Cell{}, false
	}
	c = q.items[q.head]
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return c, true
}

// Len returns the number of queued cells
func (q *Queue) Len() int {
	return q.count
}

// Cap returns the fixed capacity
func (q *Queue) Cap() int {
	return len(q.items)
}

// Empty reports whether no cells are queued
func (q *Queue) Empty() bool {
	return q.count == 0
}

// Reset discards queued cells, keeps the buffer
func (q *Queue) Reset() {
	q.head = 0
	q.count = 0
}
