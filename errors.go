// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package blq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For TryEnqueue: the queue is full (backpressure)
// For TryDequeue and Peek: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later, or switch to the blocking Enqueue/Dequeue
// variants, rather than propagating the error.
//
// The blocking operations never return ErrWouldBlock: they park the calling
// goroutine until the operation can proceed or the queue is closed.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	if err := q.TryEnqueue(&item); blq.IsWouldBlock(err) {
//	    // Queue full - shed load or fall back to blocking Enqueue
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrNotInitialized indicates the queue has no backing buffer.
//
// Returned by every operation invoked on a zero-value Queue, or on a queue
// after Close has completed. Construct queues with [New]; a closed queue
// cannot be reopened.
var ErrNotInitialized = errors.New("blq: queue not initialized")

// ErrClosed indicates the queue was closed while the caller was blocked.
//
// Returned by Enqueue and Dequeue to goroutines that were parked waiting
// for space or data when Close tore the queue down. Unlike ErrWouldBlock
// this is terminal: the operation will never succeed, and the caller should
// stop producing or consuming.
var ErrClosed = errors.New("blq: queue closed")

// ErrCorrupt indicates the queue's internal bookkeeping disagrees with its
// slot occupancy, for example a dequeue position holding no element. It is
// always returned wrapped with the slot position and cursor state.
//
// ErrCorrupt is unreachable through correct use of this package. Seeing it
// means memory corruption or a data race in the surrounding program.
var ErrCorrupt = errors.New("blq: corrupt queue state")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
//
// ErrClosed, ErrNotInitialized and ErrCorrupt are failures, not signals:
// IsSemantic returns false for them.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil or ErrWouldBlock.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
