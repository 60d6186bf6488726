// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package blq

// FIFO is the combined producer-consumer interface for a bounded
// blocking queue.
//
// FIFO provides blocking operations (Enqueue, Dequeue) that park the
// calling goroutine until they can proceed, and non-blocking variants
// (TryEnqueue, TryDequeue, Peek) that return ErrWouldBlock instead.
//
// Unlike lock-free designs, a mutex-backed queue can report an exact
// element count cheaply, so the interface includes Len alongside Cap.
//
// Example:
//
//	var q blq.FIFO[int] = blq.New[int](1024)
//
//	// Blocking enqueue: parks while the queue is full
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // ErrClosed: queue was torn down while waiting
//	}
//
//	// Blocking dequeue: parks while the queue is empty
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type FIFO[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
	Len() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs at the
// call boundary. The queue stores a copy of the pointed-to value, so the
// original can be modified after the call returns.
//
// All methods are safe for concurrent use by any number of goroutines.
type Producer[T any] interface {
	// Enqueue adds an element to the queue, blocking while the queue
	// is full. The element is copied into the queue's internal buffer.
	// Returns nil on success, ErrClosed if the queue is closed while
	// waiting, ErrNotInitialized on a zero-value or closed queue.
	Enqueue(elem *T) error

	// TryEnqueue adds an element to the queue without blocking.
	// Returns nil on success, ErrWouldBlock if the queue is full,
	// ErrNotInitialized on a zero-value or closed queue.
	TryEnqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// Elements are returned by value, copied out of the queue's internal
// buffer. The vacated slot is cleared so the queue does not pin
// referenced objects against garbage collection.
//
// All methods are safe for concurrent use by any number of goroutines.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element, blocking while
	// the queue is empty. Returns ErrClosed if the queue is closed
	// while waiting, ErrNotInitialized on a zero-value or closed queue.
	Dequeue() (T, error)

	// TryDequeue removes and returns the oldest element without
	// blocking. Returns (zero-value, ErrWouldBlock) if the queue is
	// empty, ErrNotInitialized on a zero-value or closed queue.
	TryDequeue() (T, error)

	// Peek returns the oldest element without removing it. Peek never
	// blocks: it returns (zero-value, ErrWouldBlock) if the queue is
	// empty, ErrNotInitialized on a zero-value or closed queue.
	Peek() (T, error)
}
