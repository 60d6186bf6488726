// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package blq

import (
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Queue is a bounded blocking multi-producer multi-consumer FIFO queue.
//
// A fixed circular buffer guarded by one mutex carries the elements. Two
// condition variables coordinate blocking: producers park on notFull while
// the queue is full, consumers park on notEmpty while it is empty. Each
// successful enqueue signals one consumer and each successful dequeue
// signals one producer, so a wakeup corresponds to exactly one freed or
// filled slot.
//
// The count field is the single source of truth for full and empty: head
// and tail positions are never compared to decide state, which keeps the
// full ring usable (capacity slots hold capacity elements).
//
// Elements leave the queue in the order their enqueues committed under
// the lock. No fairness is guaranteed between goroutines blocked on the
// same condition: the runtime picks which waiter a signal wakes.
//
// Memory: n slots for capacity n, plus one occupancy flag per slot.
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond // Producers wait here; signaled per freed slot
	notEmpty *sync.Cond // Consumers wait here; signaled per filled slot
	buffer   []slot[T]
	head     int // Next slot to dequeue
	tail     int // Next free slot
	count    int // Elements currently queued
	capacity int
	spinning int         // Polling rounds before parking (WithSpin)
	closed   bool        // Set once by Close; guarded by mu
	down     atomix.Bool // Mirror of closed for lock-free fast-fail
}

// slot pairs an element with an occupancy flag. The flag lets dequeue and
// peek verify that the cursors and count still agree with the buffer
// contents instead of silently returning stale data.
type slot[T any] struct {
	data T
	full bool
}

// New creates a bounded blocking queue holding up to capacity elements.
//
// Capacity is exact: no rounding is applied, and capacity 1 is a valid
// rendezvous-style queue. Panics if capacity < 1.
//
// Example:
//
//	q := blq.New[int](1024)
//	q := blq.New[*Request](64, blq.WithSpin(128))
func New[T any](capacity int, opts ...Option) *Queue[T] {
	if capacity < 1 {
		panic("blq: capacity must be >= 1")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	q := &Queue[T]{
		buffer:   make([]slot[T], capacity),
		capacity: capacity,
		spinning: o.spin,
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)

	return q
}

// Enqueue adds an element to the queue, blocking while the queue is full.
// The pointed-to value is copied into the queue's internal buffer.
//
// Returns nil on success, ErrClosed if Close runs while the caller is
// blocked, ErrNotInitialized on a zero-value or already-closed queue.
func (q *Queue[T]) Enqueue(elem *T) error {
	if q.down.LoadAcquire() {
		return ErrNotInitialized
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.buffer == nil {
		return ErrNotInitialized
	}

	if q.spinning > 0 && q.count == q.capacity {
		q.spinWhile(func() bool { return q.count == q.capacity })
	}
	for !q.closed && q.count == q.capacity {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}

	if err := q.put(elem); err != nil {
		return err
	}
	q.notEmpty.Signal()
	return nil
}

// Dequeue removes and returns the oldest element, blocking while the
// queue is empty.
//
// Returns ErrClosed if Close runs while the caller is blocked,
// ErrNotInitialized on a zero-value or already-closed queue.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.down.LoadAcquire() {
		return zero, ErrNotInitialized
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.buffer == nil {
		return zero, ErrNotInitialized
	}

	if q.spinning > 0 && q.count == 0 {
		q.spinWhile(func() bool { return q.count == 0 })
	}
	for !q.closed && q.count == 0 {
		q.notEmpty.Wait()
	}
	if q.closed {
		return zero, ErrClosed
	}

	elem, err := q.take()
	if err != nil {
		return zero, err
	}
	q.notFull.Signal()
	return elem, nil
}

// TryEnqueue adds an element to the queue without blocking.
// Returns ErrWouldBlock if the queue is full.
func (q *Queue[T]) TryEnqueue(elem *T) error {
	if q.down.LoadAcquire() {
		return ErrNotInitialized
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.buffer == nil {
		return ErrNotInitialized
	}
	if q.count == q.capacity {
		return ErrWouldBlock
	}

	if err := q.put(elem); err != nil {
		return err
	}
	q.notEmpty.Signal()
	return nil
}

// TryDequeue removes and returns the oldest element without blocking.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// The emptiness check and the removal happen in one critical section, so
// concurrent TryDequeue callers race on the lock, never on stale state.
func (q *Queue[T]) TryDequeue() (T, error) {
	var zero T
	if q.down.LoadAcquire() {
		return zero, ErrNotInitialized
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.buffer == nil {
		return zero, ErrNotInitialized
	}
	if q.count == 0 {
		return zero, ErrWouldBlock
	}

	elem, err := q.take()
	if err != nil {
		return zero, err
	}
	q.notFull.Signal()
	return elem, nil
}

// Peek returns the oldest element without removing it. Peek never blocks.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) Peek() (T, error) {
	var zero T
	if q.down.LoadAcquire() {
		return zero, ErrNotInitialized
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.buffer == nil {
		return zero, ErrNotInitialized
	}
	if q.count == 0 {
		return zero, ErrWouldBlock
	}

	s := &q.buffer[q.head]
	if !s.full {
		return zero, fmt.Errorf("%w: vacant slot %d on peek (tail=%d count=%d)",
			ErrCorrupt, q.head, q.tail, q.count)
	}
	return s.data, nil
}

// Cap returns the queue capacity, or 0 after Close.
func (q *Queue[T]) Cap() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.capacity
}

// Len returns the number of queued elements, or 0 after Close.
//
// The count is exact at the moment it is read, but concurrent producers
// and consumers may change it before the caller acts on it. Use it for
// monitoring and diagnostics, not for emptiness checks: that is what
// TryDequeue is for.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Clear discards all queued elements. The queue stays usable: capacity is
// unchanged and subsequent operations proceed normally.
//
// Producers blocked on a full queue are woken, since Clear frees their
// slots. Consumers stay parked until new elements arrive.
func (q *Queue[T]) Clear() error {
	if q.down.LoadAcquire() {
		return ErrNotInitialized
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.buffer == nil {
		return ErrNotInitialized
	}

	discarded := q.count
	clear(q.buffer)
	q.head, q.tail, q.count = 0, 0, 0

	if discarded > 0 {
		q.notFull.Broadcast()
	}
	return nil
}

// Close tears the queue down. Queued elements are discarded, the buffer
// is released, and every goroutine blocked in Enqueue or Dequeue is woken
// and returns ErrClosed.
//
// After Close completes, all operations return ErrNotInitialized. A
// closed queue cannot be reopened. Returns ErrNotInitialized if the
// queue was never initialized or was already closed.
func (q *Queue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.buffer == nil {
		return ErrNotInitialized
	}

	q.closed = true
	q.down.StoreRelease(true)
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()

	q.buffer = nil
	q.head, q.tail, q.count, q.capacity = 0, 0, 0, 0
	return nil
}

// put writes elem at tail and advances the cursor. Caller holds mu and
// has established count < capacity.
func (q *Queue[T]) put(elem *T) error {
	s := &q.buffer[q.tail]
	if s.full {
		return fmt.Errorf("%w: occupied slot %d on enqueue (head=%d count=%d)",
			ErrCorrupt, q.tail, q.head, q.count)
	}
	s.data = *elem
	s.full = true
	q.tail = (q.tail + 1) % q.capacity
	q.count++
	return nil
}

// take removes and returns the element at head and advances the cursor.
// The vacated slot is zeroed so dequeued elements do not pin referenced
// objects. Caller holds mu and has established count > 0.
func (q *Queue[T]) take() (T, error) {
	s := &q.buffer[q.head]
	if !s.full {
		var zero T
		return zero, fmt.Errorf("%w: vacant slot %d on dequeue (tail=%d count=%d)",
			ErrCorrupt, q.head, q.tail, q.count)
	}
	elem := s.data
	var zero T
	s.data = zero
	s.full = false
	q.head = (q.head + 1) % q.capacity
	q.count--
	return elem, nil
}

// spinWhile polls blocked up to spinning rounds before the caller parks,
// dropping the lock and pausing the CPU between polls. Returns early if
// the queue closes or the blocking condition clears.
func (q *Queue[T]) spinWhile(blocked func() bool) {
	sw := spin.Wait{}
	for r := 0; r < q.spinning && !q.closed && blocked(); r++ {
		q.mu.Unlock()
		sw.Once()
		q.mu.Lock()
	}
}
