package queue

import (
	"sync"
	"time"
)

// PendingNotification is a reminder email waiting to be retried.
type PendingNotification struct {
	ID         string
	Email      string
	Body       string
	RetryAt    time.Time
	RetryCount int
	MaxRetries int
}

type Queue struct {
	items []*PendingNotification
	mu    sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		items: make([]*PendingNotification, 0),
	}
}

func (q *Queue) Enqueue(n *PendingNotification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

// Dequeue removes and returns the first notification whose retry time has
// arrived, or nil when nothing is due.
func (q *Queue) Dequeue() *PendingNotification {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	for i, n := range q.items {
		if !n.RetryAt.After(now) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return n
		}
	}
	return nil
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) GetAll() []*PendingNotification {
	q.mu.Lock()
	defer q.mu.Unlock()
	result := make([]*PendingNotification, len(q.items))
	copy(result, q.items)
	return result
}
