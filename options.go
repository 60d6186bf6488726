// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package blq

// options holds queue configuration collected from Option values.
type options struct {
	// Performance hints
	spin int // Polling rounds before parking on a condition variable
}

// Option configures queue creation.
//
// Options are applied in order by [New]:
//
//	q := blq.New[Event](1024, blq.WithSpin(64))
type Option func(*options)

// WithSpin makes the blocking operations poll the queue state up to
// rounds times, pausing with a CPU relax instruction between polls,
// before parking on a condition variable.
//
// Trade-off: burns CPU while polling, but avoids the scheduler
// round-trip of a park/wake cycle when the queue drains or fills
// within microseconds. Useful for low-latency handoff between pinned
// goroutines; leave unset for general workloads.
//
// The default is 0 (park immediately). Negative values are treated
// as 0.
func WithSpin(rounds int) Option {
	return func(o *options) {
		o.spin = max(rounds, 0)
	}
}
