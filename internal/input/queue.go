package input

import "sync"

// DefaultQueueCapacity bounds a Queue created with a non-positive capacity.
const DefaultQueueCapacity = 256

// Queue is a Source fed by Push from any goroutine. Network and touch hosts
// push into it as messages arrive.
type Queue struct {
	mu       sync.Mutex
	events   []Event
	capacity int
}

// NewQueue creates a queue holding at most capacity undrained events.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{capacity: capacity}
}

// Push enqueues ev. It returns false and drops the event when the queue is
// full, so a slow poller never blocks the producer.
func (q *Queue) Push(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) >= q.capacity {
		return false
	}
	q.events = append(q.events, ev)
	return true
}

// Len returns the number of undrained events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drain implements Source.
func (q *Queue) Drain(dst []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	dst = append(dst, q.events...)
	q.events = q.events[:0]
	return dst
}

var _ Source = (*Queue)(nil)
