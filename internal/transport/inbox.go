// internal/transport/inbox.go
package transport

import "sync"

// Inbox is an unbounded FIFO queue carrying received lines from the reader
// goroutine to the console poll loop. Producers never block; the consumer
// drains in batches.
type Inbox struct {
	mu    sync.Mutex
	lines []string
}

// NewInbox creates an empty inbox
func NewInbox() *Inbox {
	return &Inbox{}
}

// Put appends one line. Safe for concurrent producers.
func (q *Inbox) Put(line string) {
	q.mu.Lock()
	q.lines = append(q.lines, line)
	q.mu.Unlock()
}

// DrainAll removes and returns every queued line in arrival order. It
// returns nil when the queue is empty and never blocks.
func (q *Inbox) DrainAll() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.lines) == 0 {
		return nil
	}
	out := q.lines
	q.lines = nil
	return out
}

// Len reports the number of queued lines.
func (q *Inbox) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}
