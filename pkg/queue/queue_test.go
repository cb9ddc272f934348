package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDequeueReturnsOnlyDueItems(t *testing.T) {
	q := NewQueue()

	q.Enqueue(&PendingNotification{ID: "later", Email: "a@example.com", RetryAt: time.Now().Add(time.Hour)})
	q.Enqueue(&PendingNotification{ID: "due", Email: "b@example.com", RetryAt: time.Now().Add(-time.Second)})

	got := q.Dequeue()
	assert.NotNil(t, got)
	assert.Equal(t, "due", got.ID)

	assert.Nil(t, q.Dequeue())
	assert.Equal(t, 1, q.Size())
}

func TestGetAllCopies(t *testing.T) {
	q := NewQueue()
	q.Enqueue(&PendingNotification{ID: "n1", RetryAt: time.Now()})

	all := q.GetAll()
	assert.Len(t, all, 1)
	assert.Equal(t, 1, q.Size())
}
