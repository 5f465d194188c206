package notifications

import "sync"

// Queue is a FIFO queue safe for concurrent use. A MaxSize of zero means
// unbounded.
type Queue[T any] struct {
	MaxSize int

	mu    sync.Mutex
	store []T
}

func NewQueue[T any](maxSize int) *Queue[T] {
	return &Queue[T]{MaxSize: maxSize}
}

func (q *Queue[T]) PushBack(e T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.MaxSize > 0 && len(q.store) == q.MaxSize {
		return false
	}

	q.store = append(q.store, e)

	return true
}

// Drain removes and returns every element in order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.store
	q.store = nil

	return out
}

func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.store)
}
