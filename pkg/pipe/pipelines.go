package pipe

import (
	"sync"

	"github.com/zeebo/errs"
)

var pipeErr = errs.Class("pipe")

// Streams the given values and closes the channel afterwards
func Generate[T any](done <-chan struct{}, values ...T) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		for _, v := range values {
			select {
			case <-done:
				return
			case out <- v:
			}
		}
	}()

	return out
}

// Ensures that the goroutine is finished on done being closed
func OrDone[T any](done <-chan struct{}, c <-chan T) <-chan T {
	stream := make(chan T)

	go func() {
		defer close(stream)

		for {
			select {
			case <-done:
				return
			case v, ok := <-c:
				if !ok {
					return
				}
				select {
				case stream <- v:
				case <-done:
				}
			}
		}
	}()

	return stream
}

// Maps from channel of type A to a channel of type B concurrently, output
// order is not guaranteed
func ConcurrentMap[A, B any](done <-chan struct{}, coroutines int, in <-chan A, mapper func(A) B) <-chan B {
	if coroutines <= 0 {
		coroutines = 1
	}

	out := make(chan B, coroutines)

	var wg sync.WaitGroup
	wg.Add(coroutines)
	for i := 0; i < coroutines; i++ {
		go func() {
			defer wg.Done()

			for val := range OrDone(done, in) {
				select {
				case <-done:
					return
				case out <- mapper(val):
				}
			}
		}()
	}

	go func() {
		defer close(out)
		wg.Wait()
	}()

	return out
}

type indexed[T any] struct {
	idx int
	val T
}

// Maps values concurrently and returns the mapped values in input order. It
// fails if done is closed before every value was mapped.
func Ordered[A, B any](done <-chan struct{}, coroutines int, values []A, mapper func(A) B) ([]B, error) {
	in := make([]indexed[A], len(values))
	for i, v := range values {
		in[i] = indexed[A]{idx: i, val: v}
	}

	mapped := ConcurrentMap(done, coroutines, Generate(done, in...), func(v indexed[A]) indexed[B] {
		return indexed[B]{idx: v.idx, val: mapper(v.val)}
	})

	out := make([]B, len(values))
	var count int
	for m := range mapped {
		out[m.idx] = m.val
		count++
	}

	if count != len(values) {
		return nil, pipeErr.New("interrupted after %d of %d values", count, len(values))
	}

	return out, nil
}
