// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package blq provides a bounded blocking FIFO queue.
//
// The queue is a fixed-capacity circular buffer guarded by a single mutex
// and two condition variables. Producers block while the queue is full,
// consumers block while it is empty, and closing the queue wakes every
// blocked goroutine. One implementation serves any number of producer and
// consumer goroutines.
//
// # Quick Start
//
//	q := blq.New[Event](1024)
//
//	// Producer
//	ev := Event{ID: 1}
//	if err := q.Enqueue(&ev); err != nil {
//	    // ErrClosed: queue torn down while waiting
//	}
//
//	// Consumer
//	ev, err := q.Dequeue()
//	if err == nil {
//	    process(ev)
//	}
//
// # Blocking and Non-Blocking
//
// Every direction has a blocking and a non-blocking form:
//
//	Enqueue(&v)     blocks while full     TryEnqueue(&v)  ErrWouldBlock if full
//	Dequeue()       blocks while empty    TryDequeue()    ErrWouldBlock if empty
//	                                      Peek()          ErrWouldBlock if empty
//
// The blocking forms park the calling goroutine on a condition variable;
// there is no timeout and no cancellation. Bound the wait in application
// logic (for example by closing the queue from a watchdog) if unbounded
// blocking is unacceptable. The non-blocking forms complete their check
// and their mutation inside one critical section, so a TryDequeue that
// saw a non-empty queue cannot lose the element to a concurrent caller.
//
// Peek never blocks and never removes: an empty queue is an immediate
// ErrWouldBlock. Use Dequeue to wait for data.
//
// # Common Patterns
//
// Worker Pool:
//
//	q := blq.New[Job](4096)
//
//	// Workers park in Dequeue while idle; no polling loop needed
//	for range numWorkers {
//	    go func() {
//	        for {
//	            job, err := q.Dequeue()
//	            if err != nil {
//	                return // ErrClosed: pool shut down
//	            }
//	            job.Run()
//	        }
//	    }()
//	}
//
//	// Submit from anywhere; blocks when all workers are busy
//	// and the backlog is full
//	func Submit(j Job) error {
//	    return q.Enqueue(&j)
//	}
//
// Pipeline Stage:
//
//	q := blq.New[Data](1024)
//
//	go func() { // Stage 1
//	    for data := range input {
//	        if q.Enqueue(&data) != nil {
//	            return
//	        }
//	    }
//	    // Let stage 2 drain, then release it
//	    for q.Len() > 0 {
//	        runtime.Gosched()
//	    }
//	    q.Close()
//	}()
//
//	go func() { // Stage 2
//	    for {
//	        data, err := q.Dequeue()
//	        if err != nil {
//	            return
//	        }
//	        process(data)
//	    }
//	}()
//
// Load Shedding:
//
//	// Drop instead of blocking when the backlog is full
//	if err := q.TryEnqueue(&sample); blq.IsWouldBlock(err) {
//	    droppedSamples++
//	}
//
// # Error Handling
//
// The non-blocking operations return [ErrWouldBlock] when they cannot
// proceed. This error is sourced from [code.hybscloud.com/iox] for
// ecosystem consistency and signals control flow, not failure:
//
//	blq.IsWouldBlock(err)  // true if queue full/empty
//	blq.IsSemantic(err)    // true if control flow signal
//	blq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// [ErrClosed] is returned to goroutines whose blocking Enqueue or Dequeue
// was interrupted by Close. [ErrNotInitialized] is returned by every
// operation on a zero-value queue or after Close has completed. Both are
// terminal; treat them as a signal to stop.
//
// [ErrCorrupt] wraps internal invariant violations (a dequeue position
// holding no element). It is unreachable through correct use and
// indicates memory corruption in the surrounding program.
//
// # Capacity and Length
//
// Capacity is exact, not rounded:
//
//	q := blq.New[int](3)     // Actual capacity: 3
//	q := blq.New[int](1000)  // Actual capacity: 1000
//
// Minimum capacity is 1; New panics if capacity < 1. A capacity-1 queue
// is a valid rendezvous-style handoff buffer.
//
// Len reports the exact element count. Under a single lock this costs one
// uncontended lock acquisition, unlike lock-free designs where an exact
// count would require cross-core synchronization. The count is a snapshot:
// concurrent operations may change it before the caller acts on it.
//
// # Lifecycle
//
// Close tears the queue down: queued elements are discarded, the buffer is
// released, and every goroutine blocked in Enqueue or Dequeue wakes with
// ErrClosed. Operations arriving after Close return ErrNotInitialized.
// A closed queue cannot be reopened.
//
// To shut down without losing data, stop producers first, wait for the
// queue to drain (Len reaching 0), then Close to release parked consumers:
//
//	prodWg.Wait()
//	for q.Len() > 0 {
//	    runtime.Gosched()
//	}
//	q.Close()
//
// Clear discards queued elements but keeps the queue usable. Producers
// blocked on a full queue are woken by Clear, since their slots are free.
//
// # Ordering and Fairness
//
// Elements dequeue in the order their enqueues committed under the lock.
// With one producer this is exactly submission order. With multiple
// producers, concurrent enqueues commit in lock-acquisition order.
//
// No fairness is guaranteed between goroutines blocked on the same
// condition: each successful operation wakes one waiter, chosen by the
// runtime, and a newly arrived caller can slip in ahead of a just-woken
// waiter. Starvation-sensitive workloads need external scheduling.
//
// # Performance Hints
//
// WithSpin makes the blocking operations poll briefly before parking:
//
//	q := blq.New[Event](1024, blq.WithSpin(64))
//
// Each poll drops the lock and pauses the CPU, so a slot freed within
// microseconds is picked up without a scheduler round-trip. This trades
// CPU for latency; leave it unset for general workloads.
//
// # Thread Safety
//
// All operations are safe for any number of concurrent producer and
// consumer goroutines. There are no single-producer or single-consumer
// constraints to violate: the mutex serializes every access pattern.
//
// # Race Detection
//
// The queue synchronizes exclusively through sync.Mutex and sync.Cond,
// both of which the race detector models precisely. The full test suite,
// examples included, runs clean under -race; no tests are excluded.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for the lock-free closed-state fast path,
// and [code.hybscloud.com/spin] for CPU pause instructions.
package blq
