package notifications

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type someType struct{}

func Test_QueueShouldReachMaxSizeIfSpecified(t *testing.T) {
	const Size = 10
	q := NewQueue[someType](Size)

	for i := 0; i < Size; i++ {
		assert.True(t, q.PushBack(someType{}))
		assert.Equal(t, i+1, q.Size())
	}

	assert.False(t, q.PushBack(someType{}))
	assert.Equal(t, Size, q.Size())
}

func Test_PushBackWithoutMaxLimit(t *testing.T) {
	const Size = 10000
	q := NewQueue[int](0)

	for i := 0; i < Size; i++ {
		assert.True(t, q.PushBack(i))
	}

	assert.Equal(t, Size, q.Size())
}

func Test_DrainKeepsInsertionOrder(t *testing.T) {
	q := NewQueue[string](3)
	q.PushBack("a")
	q.PushBack("b")

	assert.Equal(t, []string{"a", "b"}, q.Drain())
	assert.Equal(t, 0, q.Size())
	assert.Empty(t, q.Drain())
}

func Test_DrainMakesRoomInBoundedQueue(t *testing.T) {
	q := NewQueue[int](1)
	assert.True(t, q.PushBack(1))
	assert.False(t, q.PushBack(2))

	q.Drain()

	assert.True(t, q.PushBack(3))
}

func Test_IsConsistentWithMultipleCorroutines(t *testing.T) {
	const Concurrency = 16
	const Size = 1000
	q := NewQueue[someType](0)

	var wg sync.WaitGroup
	wg.Add(Concurrency)
	for it := 0; it < Concurrency; it++ {
		go func() {
			defer wg.Done()

			for i := 0; i < Size; i++ {
				assert.True(t, q.PushBack(someType{}))
			}
		}()
	}

	wg.Wait()
	assert.Len(t, q.Drain(), Concurrency*Size)
}
